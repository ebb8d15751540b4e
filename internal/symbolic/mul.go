package symbolic

import (
	"sort"
)

// Mul is a product of at least two factors. A rational coefficient, when
// present, is the first factor.
type Mul struct {
	factors []Expr
}

// Factors returns the multiplicands.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// MulOf returns the canonical product of factors: nested products are
// flattened, numbers fold into one coefficient and equal bases add their
// exponents. A coefficient times a single sum is distributed.
func MulOf(factors ...Expr) Expr {
	type group struct {
		base Expr
		exp  Expr
	}
	coeff := Int(1)
	groups := map[string]*group{}
	var order []string

	pending := append([]Expr(nil), factors...)
	for i := 0; i < len(pending); i++ {
		switch f := pending[i].(type) {
		case *Num:
			coeff = numMul(coeff, f)
			continue
		case *Mul:
			pending = append(pending, f.factors...)
			continue
		}
		base, exp := asPow(pending[i])
		key := base.String()
		g, seen := groups[key]
		if !seen {
			groups[key] = &group{base: base, exp: exp}
			order = append(order, key)
			continue
		}
		g.exp = AddOf(g.exp, exp)
	}
	if coeff.IsZero() {
		return Int(0)
	}

	var others []Expr
	for _, key := range order {
		g := groups[key]
		switch p := PowOf(g.base, g.exp).(type) {
		case *Num:
			coeff = numMul(coeff, p)
		case *Mul:
			for _, f := range p.factors {
				if n, ok := f.(*Num); ok {
					coeff = numMul(coeff, n)
					continue
				}
				others = append(others, f)
			}
		default:
			others = append(others, p)
		}
	}
	if coeff.IsZero() {
		return Int(0)
	}
	if len(others) == 0 {
		return coeff
	}
	if !coeff.IsOne() && len(others) == 1 {
		if a, ok := others[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}

	sortFactors(others)
	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// Div returns a / b.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, Int(-1))) }

// asPow views a factor as base**exp so that x*x**2 and exp(a)*exp(b) combine.
func asPow(e Expr) (Expr, Expr) {
	switch t := e.(type) {
	case *Pow:
		return t.base, t.exp
	case *Func:
		if t.name == "exp" {
			return E, t.arg
		}
	}
	return e, Int(1)
}

func factorRank(e Expr) int {
	switch t := e.(type) {
	case *Const:
		return 0
	case *Sym:
		return 1
	case *Pow:
		if _, ok := t.base.(*Sym); ok {
			return 1
		}
		return 2
	case *Add:
		return 3
	}
	return 4
}

func sortFactors(factors []Expr) {
	sort.SliceStable(factors, func(i, j int) bool {
		ri, rj := factorRank(factors[i]), factorRank(factors[j])
		if ri != rj {
			return ri < rj
		}
		bi, _ := asPow(factors[i])
		bj, _ := asPow(factors[j])
		return bi.String() < bj.String()
	})
}

func (m *Mul) Diff(v string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		d := m.factors[i].Diff(v)
		if n, ok := d.(*Num); ok && n.IsZero() {
			continue
		}
		prod := make([]Expr, 0, len(m.factors))
		for j, f := range m.factors {
			if i == j {
				prod = append(prod, d)
				continue
			}
			prod = append(prod, f)
		}
		terms = append(terms, MulOf(prod...))
	}
	return AddOf(terms...)
}

func (m *Mul) Subs(v string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Subs(v, value)
	}
	return MulOf(out...)
}

func (m *Mul) Equal(other Expr) bool { return equal(m, other) }

func (m *Mul) Eval(env map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return finite(prod)
}

func (m *Mul) prec() int { return precMul }
