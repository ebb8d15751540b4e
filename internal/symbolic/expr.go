package symbolic

import (
	"math"
	"math/big"
)

// Expr is a node of an immutable expression tree.
type Expr interface {
	String() string
	// Diff returns the derivative with respect to the symbol v.
	Diff(v string) Expr
	// Subs replaces every occurrence of the symbol v by value and re-canonicalises.
	Subs(v string, value Expr) Expr
	Equal(other Expr) bool
	// Eval computes a float64 using env for free symbols.
	Eval(env map[string]float64) (float64, error)
	prec() int
}

// printing precedence, lowest binds loosest
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// ===== Num =====

// Num is an exact rational number.
type Num struct {
	val *big.Rat
}

func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Frac returns p/q.
func Frac(p, q int64) *Num {
	if q == 0 {
		raise(ErrDivisionByZero, "zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac64(p, q)}
}

// Rat wraps a copy of r.
func Rat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsInt() bool      { return n.val.IsInt() }
func (n *Num) Sign() int        { return n.val.Sign() }
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) Diff(string) Expr         { return Int(0) }
func (n *Num) Subs(string, Expr) Expr   { return n }
func (n *Num) Equal(other Expr) bool    { return equal(n, other) }
func (n *Num) Eval(map[string]float64) (float64, error) { return n.Float64(), nil }

func (n *Num) prec() int {
	if n.Sign() < 0 || !n.IsInt() {
		return precMul
	}
	return precAtom
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numAbs(a *Num) *Num    { return &Num{val: new(big.Rat).Abs(a.val)} }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

func numInv(a *Num) *Num {
	if a.IsZero() {
		raise(ErrDivisionByZero, "1/0")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// ===== Sym =====

// Sym is a free symbol such as x.
type Sym struct {
	name string
}

func Symbol(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }

func (s *Sym) Diff(v string) Expr {
	if s.name == v {
		return Int(1)
	}
	return Int(0)
}

func (s *Sym) Subs(v string, value Expr) Expr {
	if s.name == v {
		return value
	}
	return s
}

func (s *Sym) Equal(other Expr) bool { return equal(s, other) }

func (s *Sym) Eval(env map[string]float64) (float64, error) {
	if val, ok := env[s.name]; ok {
		return val, nil
	}
	return 0, &KernelError{Err: ErrNotNumeric, Detail: "free symbol " + s.name}
}

func (s *Sym) prec() int { return precAtom }

// ===== Const =====

// Const is a named real constant.
type Const struct {
	name  string
	value float64
}

var (
	Pi = &Const{name: "pi", value: math.Pi}
	E  = &Const{name: "E", value: math.E}
)

func (c *Const) String() string                          { return c.name }
func (c *Const) Diff(string) Expr                        { return Int(0) }
func (c *Const) Subs(string, Expr) Expr                  { return c }
func (c *Const) Equal(other Expr) bool                   { return equal(c, other) }
func (c *Const) Eval(map[string]float64) (float64, error) { return c.value, nil }
func (c *Const) prec() int                               { return precAtom }

func isE(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.name == E.name
}

func isPi(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.name == Pi.name
}

// FreeOf reports whether e does not mention the symbol v.
func FreeOf(e Expr, v string) bool {
	switch t := e.(type) {
	case *Sym:
		return t.name != v
	case *Add:
		for _, term := range t.terms {
			if !FreeOf(term, v) {
				return false
			}
		}
	case *Mul:
		for _, f := range t.factors {
			if !FreeOf(f, v) {
				return false
			}
		}
	case *Pow:
		return FreeOf(t.base, v) && FreeOf(t.exp, v)
	case *Func:
		return FreeOf(t.arg, v)
	}
	return true
}

// FreeSymbols returns the distinct symbol names of e in first-seen order.
func FreeSymbols(e Expr) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch t := e.(type) {
		case *Sym:
			if !seen[t.name] {
				seen[t.name] = true
				names = append(names, t.name)
			}
		case *Add:
			for _, term := range t.terms {
				walk(term)
			}
		case *Mul:
			for _, f := range t.factors {
				walk(f)
			}
		case *Pow:
			walk(t.base)
			walk(t.exp)
		case *Func:
			walk(t.arg)
		}
	}
	walk(e)
	return names
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &KernelError{Err: ErrUndefined}
	}
	return v, nil
}
