package symbolic

import (
	"fmt"
)

// maxIntegrationDepth bounds recursive rule application.
const maxIntegrationDepth = 10

// substitution variable used by the derivative-divides rule
const dummy = "_u"

// Differentiate returns de/dv in canonical form.
func Differentiate(e Expr, v string) (out Expr, err error) {
	defer guard(&err)
	return rebuild(e).Diff(v), nil
}

// Integrate returns an antiderivative of e with respect to v, without the
// constant of integration. Supported: linearity, powers (including 1/x),
// elementary functions of a linear argument, a**x, sin**2 and cos**2,
// (b + c*x**2)**n for n = -1, -1/2, 1/2, exp(b - k*x**2) through erf,
// polynomials times sin, cos, exp or log by parts, and f(g(x))*g'(x) by
// substitution. Anything else fails with ErrNotIntegrable.
func Integrate(e Expr, v string) (out Expr, err error) {
	defer guard(&err)

	e = rebuild(e)
	out, ok := integrate(e, v, 0)
	if !ok {
		return nil, &KernelError{Err: ErrNotIntegrable, Detail: fmt.Sprintf("%s with respect to %s", e, v)}
	}
	return out, nil
}

func integrate(e Expr, v string, depth int) (Expr, bool) {
	if depth > maxIntegrationDepth {
		return nil, false
	}
	if FreeOf(e, v) {
		return MulOf(e, Symbol(v)), true
	}

	switch t := e.(type) {
	case *Sym:
		return MulOf(Frac(1, 2), PowOf(t, Int(2))), true
	case *Add:
		out := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			r, ok := integrate(term, v, depth+1)
			if !ok {
				return nil, false
			}
			out[i] = r
		}
		return AddOf(out...), true
	case *Mul:
		return integrateProduct(t, v, depth)
	case *Pow:
		if r, ok := integratePow(t, v, depth); ok {
			return r, true
		}
	case *Func:
		if r, ok := integrateFunc(t, v); ok {
			return r, true
		}
		if r, ok := integrateGaussian(t, v); ok {
			return r, true
		}
	}
	return substitute(e, v, depth)
}

// linear matches e = a*v + c with a constant a != 0.
func linear(e Expr, v string) (a Expr, ok bool) {
	d := e.Diff(v)
	if !FreeOf(d, v) {
		return nil, false
	}
	if n, isNum := d.(*Num); isNum && n.IsZero() {
		return nil, false
	}
	return d, true
}

func integratePow(p *Pow, v string, depth int) (Expr, bool) {
	baseFree, expFree := FreeOf(p.base, v), FreeOf(p.exp, v)

	if expFree {
		if a, ok := linear(p.base, v); ok {
			if n, isNum := p.exp.(*Num); isNum && numCmp(n, Int(-1)) == 0 {
				return Div(FuncOf("log", p.base), a), true
			}
			next := AddOf(p.exp, Int(1))
			return Div(PowOf(p.base, next), MulOf(next, a)), true
		}
		if f, ok := p.base.(*Func); ok {
			if n, isNum := p.exp.(*Num); isNum && numCmp(n, Int(2)) == 0 {
				if r, ok := integrateSquaredTrig(f, v); ok {
					return r, true
				}
			}
		}
		if n, isNum := p.exp.(*Num); isNum && n.IsInt() && n.Sign() > 0 {
			if _, isSum := p.base.(*Add); isSum {
				expanded := expand(p)
				if !equal(expanded, p) {
					return integrate(expanded, v, depth+1)
				}
			}
		}
		return integrateQuadraticPow(p, v)
	}

	if baseFree {
		if a, ok := linear(p.exp, v); ok {
			return Div(p, MulOf(a, FuncOf("log", p.base))), true
		}
	}
	return nil, false
}

// quadratic matches e = b + c*v**2 with rational b and c != 0.
func quadratic(e Expr, v string) (b, c *Num, ok bool) {
	d := e.Diff(v)
	dd, isNum := d.Diff(v).(*Num)
	if !isNum || dd.IsZero() || !equal(d, MulOf(dd, Symbol(v))) {
		return nil, nil, false
	}
	b, isNum = e.Subs(v, Int(0)).(*Num)
	if !isNum {
		return nil, nil, false
	}
	return b, numMul(dd, Frac(1, 2)), true
}

func sqrtOf(n *Num) Expr { return PowOf(n, Frac(1, 2)) }

// integrateQuadraticPow handles (b + c*x**2)**n for n in {-1, -1/2, 1/2},
// the forms leading to atan, asin and asinh.
func integrateQuadraticPow(p *Pow, v string) (Expr, bool) {
	n, isNum := p.exp.(*Num)
	if !isNum {
		return nil, false
	}
	b, c, ok := quadratic(p.base, v)
	if !ok || b.IsZero() {
		return nil, false
	}
	x := Symbol(v)
	ratio := numMul(c, numInv(b))

	switch {
	case numCmp(n, Int(-1)) == 0 && ratio.Sign() > 0:
		// 1/(b + c*x**2) = atan(sqrt(c/b)*x)/sqrt(b*c), sign taken from b
		r := Div(FuncOf("atan", MulOf(sqrtOf(ratio), x)), sqrtOf(numMul(b, c)))
		if b.Sign() < 0 {
			r = Neg(r)
		}
		return r, true
	case b.Sign() < 0:
		return nil, false
	case numCmp(n, Frac(-1, 2)) == 0 && c.Sign() < 0:
		k := numNeg(c)
		return Div(FuncOf("asin", MulOf(sqrtOf(numNeg(ratio)), x)), sqrtOf(k)), true
	case numCmp(n, Frac(-1, 2)) == 0:
		return Div(FuncOf("asinh", MulOf(sqrtOf(ratio), x)), sqrtOf(c)), true
	case numCmp(n, Frac(1, 2)) == 0 && c.Sign() < 0:
		k := numNeg(c)
		arc := FuncOf("asin", MulOf(sqrtOf(numNeg(ratio)), x))
		return AddOf(
			MulOf(Frac(1, 2), x, p),
			MulOf(Frac(1, 2), b, PowOf(k, Frac(-1, 2)), arc),
		), true
	}
	return nil, false
}

// integrateGaussian handles exp(b - k*x**2) with k > 0 through erf.
func integrateGaussian(f *Func, v string) (Expr, bool) {
	if f.name != "exp" {
		return nil, false
	}
	b, c, ok := quadratic(f.arg, v)
	if !ok || c.Sign() > 0 {
		return nil, false
	}
	k := numNeg(c)
	return MulOf(
		FuncOf("exp", b),
		Frac(1, 2),
		PowOf(Pi, Frac(1, 2)),
		PowOf(k, Frac(-1, 2)),
		FuncOf("erf", MulOf(sqrtOf(k), Symbol(v))),
	), true
}

// integrateSquaredTrig handles sin(u)**2 and cos(u)**2 for linear u.
func integrateSquaredTrig(f *Func, v string) (Expr, bool) {
	a, ok := linear(f.arg, v)
	if !ok {
		return nil, false
	}
	double := FuncOf("sin", MulOf(Int(2), f.arg))
	half := Div(f.arg, MulOf(Int(2), a))
	quarter := Div(double, MulOf(Int(4), a))
	switch f.name {
	case "sin":
		return Sub(half, quarter), true
	case "cos":
		return AddOf(half, quarter), true
	}
	return nil, false
}

func integrateFunc(f *Func, v string) (Expr, bool) {
	a, ok := linear(f.arg, v)
	if !ok {
		return nil, false
	}
	u := f.arg
	var r Expr
	switch f.name {
	case "sin":
		r = Neg(FuncOf("cos", u))
	case "cos":
		r = FuncOf("sin", u)
	case "tan":
		r = Neg(FuncOf("log", FuncOf("cos", u)))
	case "exp":
		r = FuncOf("exp", u)
	case "sinh":
		r = FuncOf("cosh", u)
	case "cosh":
		r = FuncOf("sinh", u)
	case "tanh":
		r = FuncOf("log", FuncOf("cosh", u))
	case "log":
		r = Sub(MulOf(u, FuncOf("log", u)), u)
	case "asin":
		r = AddOf(MulOf(u, FuncOf("asin", u)), PowOf(Sub(Int(1), PowOf(u, Int(2))), Frac(1, 2)))
	case "acos":
		r = Sub(MulOf(u, FuncOf("acos", u)), PowOf(Sub(Int(1), PowOf(u, Int(2))), Frac(1, 2)))
	case "atan":
		r = Sub(MulOf(u, FuncOf("atan", u)), Div(FuncOf("log", AddOf(PowOf(u, Int(2)), Int(1))), Int(2)))
	default:
		return nil, false
	}
	return Div(r, a), true
}

func integrateProduct(m *Mul, v string, depth int) (Expr, bool) {
	var constant, dependent []Expr
	for _, f := range m.factors {
		if FreeOf(f, v) {
			constant = append(constant, f)
			continue
		}
		dependent = append(dependent, f)
	}
	c := MulOf(constant...)

	if len(dependent) == 1 {
		r, ok := integrate(dependent[0], v, depth+1)
		if !ok {
			return nil, false
		}
		return MulOf(c, r), true
	}

	body := MulOf(dependent...)
	if expanded := expand(body); !equal(expanded, body) {
		if _, isSum := expanded.(*Add); isSum {
			if r, ok := integrate(expanded, v, depth+1); ok {
				return MulOf(c, r), true
			}
		}
	}
	if r, ok := byParts(dependent, v, depth); ok {
		return MulOf(c, r), true
	}
	if r, ok := substitute(body, v, depth); ok {
		return MulOf(c, r), true
	}
	return nil, false
}

// isPolynomial reports whether e is a polynomial in v of positive degree.
func isPolynomial(e Expr, v string) bool {
	switch t := e.(type) {
	case *Sym:
		return t.name == v
	case *Pow:
		s, ok := t.base.(*Sym)
		n, isNum := t.exp.(*Num)
		return ok && s.name == v && isNum && n.IsInt() && n.Sign() > 0
	case *Add:
		found := false
		for _, term := range t.terms {
			if FreeOf(term, v) {
				continue
			}
			if !isPolynomial(term, v) {
				return false
			}
			found = true
		}
		return found
	case *Mul:
		found := false
		for _, f := range t.factors {
			if FreeOf(f, v) {
				continue
			}
			if !isPolynomial(f, v) {
				return false
			}
			found = true
		}
		return found
	}
	return false
}

// byParts integrates p(x)*f(x) for polynomial p and f one of sin, cos, exp
// of a linear argument, or log.
func byParts(dependent []Expr, v string, depth int) (Expr, bool) {
	if len(dependent) < 2 {
		return nil, false
	}
	for i, f := range dependent {
		fn, ok := f.(*Func)
		if !ok {
			continue
		}
		poly := MulOf(without(dependent, i)...)
		if !isPolynomial(poly, v) {
			continue
		}
		switch fn.name {
		case "sin", "cos", "exp", "sinh", "cosh":
			// ∫p f = p F - ∫p' F
			anti, ok := integrateFunc(fn, v)
			if !ok {
				continue
			}
			rest, ok := integrate(MulOf(poly.Diff(v), anti), v, depth+1)
			if !ok {
				continue
			}
			return Sub(MulOf(poly, anti), rest), true
		case "log", "atan", "asin":
			// ∫p f = P f - ∫P f'
			prim, ok := integrate(poly, v, depth+1)
			if !ok {
				continue
			}
			rest, ok := integrate(expand(MulOf(prim, fn.Diff(v))), v, depth+1)
			if !ok {
				continue
			}
			return Sub(MulOf(prim, fn), rest), true
		}
	}
	return nil, false
}

// substitute implements derivative-divides: for a factor f(g(x)) the
// integrand must equal c*f(g(x))*g'(x) with constant c.
func substitute(e Expr, v string, depth int) (Expr, bool) {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if FreeOf(f, v) {
			continue
		}
		for _, cand := range substitutionCandidates(f) {
			inner, outer := cand.inner, cand.outer
			if _, isSym := inner.(*Sym); isSym {
				continue
			}
			ratio := Div(Div(e, f), inner.Diff(v))
			if !FreeOf(ratio, v) {
				continue
			}
			F, ok := integrate(outer, dummy, depth+1)
			if !ok {
				continue
			}
			return MulOf(ratio, F.Subs(dummy, inner)), true
		}
	}
	return nil, false
}

type candidate struct {
	inner Expr // g(x)
	outer Expr // f(u) with u the dummy symbol
}

func substitutionCandidates(f Expr) []candidate {
	u := Symbol(dummy)
	var out []candidate
	switch t := f.(type) {
	case *Func:
		out = append(out, candidate{inner: t.arg, outer: FuncOf(t.name, u)})
		out = append(out, candidate{inner: t, outer: u})
	case *Pow:
		if len(FreeSymbols(t.exp)) == 0 {
			out = append(out, candidate{inner: t.base, outer: PowOf(u, t.exp)})
		}
		if b, ok := t.base.(*Func); ok {
			out = append(out, candidate{inner: b.arg, outer: PowOf(FuncOf(b.name, u), t.exp)})
		}
	default:
		out = append(out, candidate{inner: f, outer: u})
	}
	return out
}
