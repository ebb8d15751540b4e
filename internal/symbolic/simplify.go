package symbolic

// maxSimplifyPasses bounds the rewrite loop of Simplify.
const maxSimplifyPasses = 8

// Simplify canonicalises e and applies trigonometric identities until the
// printed form stops changing.
func Simplify(e Expr) (out Expr, err error) {
	defer guard(&err)

	out = rebuild(e)
	for i := 0; i < maxSimplifyPasses; i++ {
		next := trigRewrite(out)
		if equal(next, out) {
			break
		}
		out = next
	}
	return out, nil
}

// rebuild re-creates e bottom-up through the canonical constructors.
func rebuild(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			out[i] = rebuild(term)
		}
		return AddOf(out...)
	case *Mul:
		out := make([]Expr, len(t.factors))
		for i, f := range t.factors {
			out[i] = rebuild(f)
		}
		return MulOf(out...)
	case *Pow:
		return PowOf(rebuild(t.base), rebuild(t.exp))
	case *Func:
		return FuncOf(t.name, rebuild(t.arg))
	}
	return e
}

// Expand multiplies out products of sums and small integer powers of sums.
func Expand(e Expr) (out Expr, err error) {
	defer guard(&err)
	return expand(e), nil
}

const maxExpandPower = 12

func expand(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			out[i] = expand(term)
		}
		return AddOf(out...)
	case *Mul:
		acc := []Expr{Int(1)}
		for _, f := range t.factors {
			acc = distribute(acc, summands(expand(f)))
		}
		return AddOf(acc...)
	case *Pow:
		base := expand(t.base)
		if n, ok := t.exp.(*Num); ok && n.IsInt() && n.Sign() > 0 && n.Float64() <= maxExpandPower {
			if _, isSum := base.(*Add); isSum {
				acc := []Expr{Int(1)}
				for i := 0; i < int(n.Float64()); i++ {
					acc = distribute(acc, summands(base))
				}
				return AddOf(acc...)
			}
		}
		return PowOf(base, expand(t.exp))
	case *Func:
		return FuncOf(t.name, expand(t.arg))
	}
	return e
}

func summands(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

func distribute(left, right []Expr) []Expr {
	out := make([]Expr, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, MulOf(l, r))
		}
	}
	return out
}

// ===== trigonometric identities =====

func trigRewrite(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			out[i] = trigRewrite(term)
		}
		sum := AddOf(out...)
		if a, ok := sum.(*Add); ok {
			return pythagorean(a)
		}
		return sum
	case *Mul:
		out := make([]Expr, len(t.factors))
		for i, f := range t.factors {
			out[i] = trigRewrite(f)
		}
		prod := MulOf(out...)
		if m, ok := prod.(*Mul); ok {
			return trigProduct(m)
		}
		return prod
	case *Pow:
		return PowOf(trigRewrite(t.base), trigRewrite(t.exp))
	case *Func:
		return FuncOf(t.name, trigRewrite(t.arg))
	}
	return e
}

// squaredTrig matches c*sin(u)**2 or c*cos(u)**2.
func squaredTrig(term Expr) (coeff *Num, name string, arg Expr, ok bool) {
	coeff, rest := splitCoeff(term)
	p, isPow := rest.(*Pow)
	if !isPow {
		return nil, "", nil, false
	}
	n, isNum := p.exp.(*Num)
	if !isNum || numCmp(n, Int(2)) != 0 {
		return nil, "", nil, false
	}
	f, isFunc := p.base.(*Func)
	if !isFunc || (f.name != "sin" && f.name != "cos") {
		return nil, "", nil, false
	}
	return coeff, f.name, f.arg, true
}

func without(terms []Expr, skip ...int) []Expr {
	out := make([]Expr, 0, len(terms))
next:
	for i, t := range terms {
		for _, s := range skip {
			if i == s {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}

// pythagorean folds a*sin(u)**2 + a*cos(u)**2 into a and its relatives.
func pythagorean(a *Add) Expr {
	terms := a.terms
	for i := range terms {
		ci, fi, ui, ok := squaredTrig(terms[i])
		if !ok {
			continue
		}
		for j := range terms {
			if j == i {
				continue
			}
			cj, fj, uj, ok := squaredTrig(terms[j])
			if !ok || fi == fj || !equal(ui, uj) {
				continue
			}
			switch {
			case numCmp(ci, cj) == 0:
				return AddOf(append(without(terms, i, j), ci)...)
			case fi == "cos" && numCmp(ci, numNeg(cj)) == 0:
				double := MulOf(ci, FuncOf("cos", MulOf(Int(2), ui)))
				return AddOf(append(without(terms, i, j), double)...)
			}
		}
		for j, t := range terms {
			n, isNum := t.(*Num)
			if !isNum || numCmp(n, numNeg(ci)) != 0 {
				continue
			}
			other := "sin"
			if fi == "sin" {
				other = "cos"
			}
			folded := MulOf(n, PowOf(FuncOf(other, ui), Int(2)))
			return AddOf(append(without(terms, i, j), folded)...)
		}
	}
	return a
}

// trigProduct rewrites sin(u)/cos(u) as tan(u) and c*sin(u)*cos(u) as c/2*sin(2u).
// tan(u) next to sin(u) or cos(u) is first written as sin(u)/cos(u).
func trigProduct(m *Mul) Expr {
	if r, ok := tanAsQuotient(m); ok {
		return r
	}

	sinIdx, cosIdx := -1, -1
	var sinExp, cosExp *Num
	for i, f := range m.factors {
		base, exp := asPow(f)
		fn, ok := base.(*Func)
		if !ok {
			continue
		}
		n, ok := exp.(*Num)
		if !ok {
			continue
		}
		switch {
		case fn.name == "sin" && sinIdx < 0:
			sinIdx, sinExp = i, n
		case fn.name == "cos" && cosIdx < 0:
			cosIdx, cosExp = i, n
		}
	}
	if sinIdx < 0 || cosIdx < 0 {
		return m
	}
	sinBase, _ := asPow(m.factors[sinIdx])
	cosBase, _ := asPow(m.factors[cosIdx])
	u := sinBase.(*Func).arg
	if !equal(u, cosBase.(*Func).arg) {
		return m
	}

	rest := without(m.factors, sinIdx, cosIdx)
	switch {
	case numCmp(sinExp, numNeg(cosExp)) == 0:
		return MulOf(append(rest, PowOf(FuncOf("tan", u), sinExp))...)
	case sinExp.IsOne() && cosExp.IsOne():
		return MulOf(append(rest, Frac(1, 2), FuncOf("sin", MulOf(Int(2), u)))...)
	}
	return m
}

// tanAsQuotient replaces tan(u)**n by sin(u)**n*cos(u)**-n when that leaves
// fewer trigonometric factors, e.g. tan(x)*cos(x) = sin(x).
func tanAsQuotient(m *Mul) (Expr, bool) {
	for i, f := range m.factors {
		base, exp := asPow(f)
		fn, ok := base.(*Func)
		if !ok || fn.name != "tan" || !hasSinCos(m.factors, fn.arg) {
			continue
		}
		rest := without(m.factors, i)
		rewritten := MulOf(append(rest,
			PowOf(FuncOf("sin", fn.arg), exp),
			PowOf(FuncOf("cos", fn.arg), Neg(exp)),
		)...)
		if trigFactors(rewritten) < trigFactors(m) {
			return rewritten, true
		}
	}
	return nil, false
}

func hasSinCos(factors []Expr, u Expr) bool {
	for _, f := range factors {
		base, _ := asPow(f)
		if fn, ok := base.(*Func); ok && (fn.name == "sin" || fn.name == "cos") && equal(fn.arg, u) {
			return true
		}
	}
	return false
}

func trigFactors(e Expr) int {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	n := 0
	for _, f := range factors {
		base, _ := asPow(f)
		if fn, ok := base.(*Func); ok {
			switch fn.name {
			case "sin", "cos", "tan":
				n++
			}
		}
	}
	return n
}
