package symbolic

import (
	"sort"
)

// Add is a sum of at least two terms.
type Add struct {
	terms []Expr
}

// Terms returns the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// AddOf returns the canonical sum of terms: nested sums are flattened, like
// terms are collected and the numeric constant goes last.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.terms...)
			continue
		}
		flat = append(flat, t)
	}

	type group struct {
		coeff *Num
		rest  Expr
	}
	constant := Int(0)
	groups := map[string]*group{}
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			g = &group{coeff: Int(0), rest: rest}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff = numAdd(g.coeff, c)
	}

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() {
			continue
		}
		scaled := g.rest
		if !g.coeff.IsOne() {
			scaled = MulOf(g.coeff, g.rest)
		}
		switch s := scaled.(type) {
		case *Add:
			out = append(out, s.terms...)
		case *Num:
			constant = numAdd(constant, s)
		default:
			out = append(out, s)
		}
	}
	sortTerms(out)
	if !constant.IsZero() {
		out = append(out, constant)
	}

	switch len(out) {
	case 0:
		return Int(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(Int(-1), e) }

// splitCoeff separates the leading rational coefficient of a term.
func splitCoeff(t Expr) (*Num, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return Int(1), t
	}
	c, ok := m.factors[0].(*Num)
	if !ok {
		return Int(1), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}
	return c, &Mul{factors: append([]Expr(nil), rest...)}
}

// sortTerms orders terms by descending degree, positive before negative,
// then lexically.
func sortTerms(terms []Expr) {
	sort.SliceStable(terms, func(i, j int) bool {
		di, dj := degree(terms[i]), degree(terms[j])
		if di != dj {
			return di > dj
		}
		ni, nj := isNegative(terms[i]), isNegative(terms[j])
		if ni != nj {
			return !ni
		}
		_, ri := splitCoeff(terms[i])
		_, rj := splitCoeff(terms[j])
		return ri.String() < rj.String()
	})
}

func degree(e Expr) float64 {
	switch t := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := t.exp.(*Num); ok {
			return degree(t.base) * n.Float64()
		}
	case *Mul:
		var d float64
		for _, f := range t.factors {
			d += degree(f)
		}
		return d
	case *Add:
		var d float64
		for i, term := range t.terms {
			if td := degree(term); i == 0 || td > d {
				d = td
			}
		}
		return d
	}
	return 0
}

// isNegative reports whether a term prints with a leading minus sign.
func isNegative(e Expr) bool {
	switch t := e.(type) {
	case *Num:
		return t.Sign() < 0
	case *Mul:
		for _, f := range t.factors {
			if n, ok := f.(*Num); ok && n.Sign() < 0 {
				return true
			}
		}
	}
	return false
}

func (a *Add) Diff(v string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(v)
	}
	return AddOf(out...)
}

func (a *Add) Subs(v string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Subs(v, value)
	}
	return AddOf(out...)
}

func (a *Add) Equal(other Expr) bool { return equal(a, other) }

func (a *Add) Eval(env map[string]float64) (float64, error) {
	var sum float64
	for _, t := range a.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return finite(sum)
}

func (a *Add) prec() int { return precAdd }
