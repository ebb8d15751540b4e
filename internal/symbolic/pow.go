package symbolic

import (
	"math"
	"math/big"
)

// maxExactExponent bounds exact rational powers.
const maxExactExponent = 1024

// Pow is base**exp.
type Pow struct {
	base Expr
	exp  Expr
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// PowOf returns the canonical power base**exp.
func PowOf(base, exp Expr) Expr {
	en, expIsNum := exp.(*Num)
	if expIsNum {
		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return Int(1)
		}
		if bn.IsZero() && expIsNum {
			if en.Sign() < 0 {
				raise(ErrDivisionByZero, "0**"+en.String())
			}
			return Int(0)
		}
		if expIsNum {
			if r, ok := ratPow(bn, en); ok {
				return r
			}
		}
	}

	if isE(base) {
		return FuncOf("exp", exp)
	}

	if expIsNum && en.IsInt() {
		switch b := base.(type) {
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, en))
		case *Mul:
			out := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				out[i] = PowOf(f, en)
			}
			return MulOf(out...)
		case *Func:
			if b.name == "exp" {
				return FuncOf("exp", MulOf(en, b.arg))
			}
		}
	}
	return &Pow{base: base, exp: exp}
}

// ratPow evaluates b**e exactly when the result is rational.
func ratPow(b, e *Num) (*Num, bool) {
	p, q := e.val.Num(), e.val.Denom()
	if !p.IsInt64() || !q.IsInt64() {
		return nil, false
	}
	pi, qi := p.Int64(), q.Int64()
	if pi > maxExactExponent || pi < -maxExactExponent {
		return nil, false
	}

	base := b
	if qi != 1 {
		if b.Sign() < 0 || qi > 64 {
			return nil, false
		}
		rn, ok := intRoot(b.val.Num(), qi)
		if !ok {
			return nil, false
		}
		rd, ok := intRoot(b.val.Denom(), qi)
		if !ok {
			return nil, false
		}
		base = &Num{val: new(big.Rat).SetFrac(rn, rd)}
	}

	abs := pi
	if abs < 0 {
		abs = -abs
	}
	k := big.NewInt(abs)
	num := new(big.Int).Exp(base.val.Num(), k, nil)
	den := new(big.Int).Exp(base.val.Denom(), k, nil)
	out := &Num{val: new(big.Rat).SetFrac(num, den)}
	if pi < 0 {
		out = numInv(out)
	}
	return out, true
}

// intRoot returns the exact q-th root of a non-negative n.
func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() == 0 || n.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(n), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	for _, c := range []int64{guess - 1, guess, guess + 1} {
		if c < 1 {
			continue
		}
		r := big.NewInt(c)
		if new(big.Int).Exp(r, big.NewInt(q), nil).Cmp(n) == 0 {
			return r, true
		}
	}
	return nil, false
}

func (p *Pow) Diff(v string) Expr {
	baseFree, expFree := FreeOf(p.base, v), FreeOf(p.exp, v)
	switch {
	case baseFree && expFree:
		return Int(0)
	case expFree:
		// n*b**(n-1)*b'
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, Int(-1))), p.base.Diff(v))
	case baseFree:
		// b**e*log(b)*e'
		return MulOf(p, FuncOf("log", p.base), p.exp.Diff(v))
	}
	// b**e*(e'*log(b) + e*b'/b)
	return MulOf(p, AddOf(
		MulOf(p.exp.Diff(v), FuncOf("log", p.base)),
		MulOf(p.exp, p.base.Diff(v), PowOf(p.base, Int(-1))),
	))
}

func (p *Pow) Subs(v string, value Expr) Expr {
	return PowOf(p.base.Subs(v, value), p.exp.Subs(v, value))
}

func (p *Pow) Equal(other Expr) bool { return equal(p, other) }

func (p *Pow) Eval(env map[string]float64) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}
	if b == 0 && e < 0 {
		return 0, &KernelError{Err: ErrDivisionByZero, Detail: "0**" + p.exp.String()}
	}
	return finite(math.Pow(b, e))
}

func (p *Pow) prec() int { return precPow }
