package symbolic

import (
	"math"
	"math/big"
	"sort"
)

// Func is an application of a named elementary function.
type Func struct {
	name string
	arg  Expr
}

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

var numericFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"erf":   math.Erf,
	"exp":   math.Exp,
	"log":   math.Log,
	"abs":   math.Abs,
}

var (
	oddFuncs  = map[string]bool{"sin": true, "tan": true, "asin": true, "atan": true, "sinh": true, "tanh": true, "asinh": true, "erf": true}
	evenFuncs = map[string]bool{"cos": true, "cosh": true, "abs": true}
)

// aliases accepted by the parser
var funcAliases = map[string]string{
	"ln":     "log",
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
	"Abs":    "abs",
}

// IsFunction reports whether name is a known function (aliases and sqrt included).
func IsFunction(name string) bool {
	if _, ok := funcAliases[name]; ok {
		return true
	}
	_, ok := numericFuncs[name]
	return ok || name == "sqrt"
}

// FunctionNames lists the canonical function names.
func FunctionNames() []string {
	names := make([]string, 0, len(numericFuncs)+1)
	for name := range numericFuncs {
		names = append(names, name)
	}
	names = append(names, "sqrt")
	sort.Strings(names)
	return names
}

// FuncOf returns name(arg), folding exact values such as sin(pi/6) = 1/2.
func FuncOf(name string, arg Expr) Expr {
	if alias, ok := funcAliases[name]; ok {
		name = alias
	}
	if name == "sqrt" {
		return PowOf(arg, Frac(1, 2))
	}
	if _, ok := numericFuncs[name]; !ok {
		raise(ErrSyntax, "unknown function "+name)
	}
	if v, ok := exactFunc(name, arg); ok {
		return v
	}
	if isNegative(arg) {
		switch {
		case oddFuncs[name]:
			return Neg(FuncOf(name, Neg(arg)))
		case evenFuncs[name]:
			return FuncOf(name, Neg(arg))
		}
	}
	return &Func{name: name, arg: arg}
}

func exactFunc(name string, arg Expr) (Expr, bool) {
	n, isNum := arg.(*Num)
	switch name {
	case "sin", "cos", "tan":
		if r, ok := piMultiple(arg); ok {
			return trigAtPiMultiple(name, r)
		}
	case "exp":
		if isNum && n.IsZero() {
			return Int(1), true
		}
		if isNum && n.IsOne() {
			return E, true
		}
		if f, ok := arg.(*Func); ok && f.name == "log" {
			return f.arg, true
		}
	case "log":
		if isNum && n.IsOne() {
			return Int(0), true
		}
		if isE(arg) {
			return Int(1), true
		}
		if isNum && n.IsZero() {
			raise(ErrUndefined, "log(0)")
		}
	case "abs":
		if isNum {
			return numAbs(n), true
		}
		if isPi(arg) || isE(arg) {
			return arg, true
		}
	case "sinh", "tanh", "asin", "atan", "asinh", "erf":
		if isNum && n.IsZero() {
			return Int(0), true
		}
		if name == "asin" && isNum {
			return inverseTrig(asinTable, n)
		}
		if name == "atan" && isNum {
			return inverseTrig(atanTable, n)
		}
	case "cosh":
		if isNum && n.IsZero() {
			return Int(1), true
		}
	case "acos":
		if isNum {
			return inverseTrig(acosTable, n)
		}
	}
	return nil, false
}

// piMultiple recognises r*pi with rational r, including plain 0.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch t := e.(type) {
	case *Num:
		if t.IsZero() {
			return new(big.Rat), true
		}
	case *Const:
		if isPi(t) {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(t.factors) == 2 && isPi(t.factors[1]) {
			if c, ok := t.factors[0].(*Num); ok {
				return new(big.Rat).Set(c.val), true
			}
		}
	}
	return nil, false
}

func sqrtOver(n, d int64) Expr {
	return MulOf(Frac(1, d), PowOf(Int(n), Frac(1, 2)))
}

// sine on the first quadrant in degrees
func sinQuadrant(deg int64) (Expr, bool) {
	switch deg {
	case 0:
		return Int(0), true
	case 30:
		return Frac(1, 2), true
	case 45:
		return sqrtOver(2, 2), true
	case 60:
		return sqrtOver(3, 2), true
	case 90:
		return Int(1), true
	}
	return nil, false
}

func sinDegrees(deg int64) (Expr, bool) {
	switch {
	case deg <= 90:
		return sinQuadrant(deg)
	case deg <= 180:
		return sinQuadrant(180 - deg)
	case deg <= 270:
		v, ok := sinQuadrant(deg - 180)
		if !ok {
			return nil, false
		}
		return Neg(v), true
	}
	v, ok := sinQuadrant(360 - deg)
	if !ok {
		return nil, false
	}
	return Neg(v), true
}

func trigAtPiMultiple(name string, r *big.Rat) (Expr, bool) {
	// degrees = r*180, reduced modulo 360
	deg := new(big.Rat).Mul(r, big.NewRat(180, 1))
	if !deg.IsInt() || !deg.Num().IsInt64() {
		return nil, false
	}
	d := deg.Num().Int64() % 360
	if d < 0 {
		d += 360
	}
	switch name {
	case "sin":
		return sinDegrees(d)
	case "cos":
		return sinDegrees((d + 90) % 360)
	}
	d %= 180
	if d > 90 {
		v, ok := tanQuadrant(180 - d)
		if !ok {
			return nil, false
		}
		return Neg(v), true
	}
	return tanQuadrant(d)
}

func tanQuadrant(deg int64) (Expr, bool) {
	switch deg {
	case 0:
		return Int(0), true
	case 30:
		return sqrtOver(3, 3), true
	case 45:
		return Int(1), true
	case 60:
		return PowOf(Int(3), Frac(1, 2)), true
	}
	return nil, false
}

// inverse trig values at exact points, as multiples of pi
type inverseEntry struct {
	at     *big.Rat
	piCoef *Num
}

var (
	asinTable = []inverseEntry{
		{big.NewRat(1, 2), Frac(1, 6)},
		{big.NewRat(1, 1), Frac(1, 2)},
	}
	atanTable = []inverseEntry{
		{big.NewRat(1, 1), Frac(1, 4)},
	}
	acosTable = []inverseEntry{
		{big.NewRat(1, 1), Int(0)},
		{big.NewRat(1, 2), Frac(1, 3)},
		{big.NewRat(0, 1), Frac(1, 2)},
		{big.NewRat(-1, 2), Frac(2, 3)},
		{big.NewRat(-1, 1), Int(1)},
	}
)

func inverseTrig(table []inverseEntry, n *Num) (Expr, bool) {
	for _, entry := range table {
		if entry.at.Cmp(n.val) == 0 {
			return MulOf(entry.piCoef, Pi), true
		}
	}
	return nil, false
}

// derivative of the outer function evaluated at u
func outerDerivative(name string, u Expr) Expr {
	switch name {
	case "sin":
		return FuncOf("cos", u)
	case "cos":
		return Neg(FuncOf("sin", u))
	case "tan":
		return AddOf(PowOf(FuncOf("tan", u), Int(2)), Int(1))
	case "asin":
		return PowOf(Sub(Int(1), PowOf(u, Int(2))), Frac(-1, 2))
	case "acos":
		return Neg(PowOf(Sub(Int(1), PowOf(u, Int(2))), Frac(-1, 2)))
	case "atan":
		return PowOf(AddOf(PowOf(u, Int(2)), Int(1)), Int(-1))
	case "sinh":
		return FuncOf("cosh", u)
	case "cosh":
		return FuncOf("sinh", u)
	case "asinh":
		return PowOf(AddOf(PowOf(u, Int(2)), Int(1)), Frac(-1, 2))
	case "erf":
		return MulOf(Int(2), PowOf(Pi, Frac(-1, 2)), FuncOf("exp", Neg(PowOf(u, Int(2)))))
	case "tanh":
		return Sub(Int(1), PowOf(FuncOf("tanh", u), Int(2)))
	case "exp":
		return FuncOf("exp", u)
	case "log":
		return PowOf(u, Int(-1))
	case "abs":
		return Div(u, FuncOf("abs", u))
	}
	raise(ErrSyntax, "unknown function "+name)
	return nil
}

func (f *Func) Diff(v string) Expr {
	if FreeOf(f.arg, v) {
		return Int(0)
	}
	return MulOf(outerDerivative(f.name, f.arg), f.arg.Diff(v))
}

func (f *Func) Subs(v string, value Expr) Expr {
	return FuncOf(f.name, f.arg.Subs(v, value))
}

func (f *Func) Equal(other Expr) bool { return equal(f, other) }

func (f *Func) Eval(env map[string]float64) (float64, error) {
	x, err := f.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	fn, ok := numericFuncs[f.name]
	if !ok {
		return 0, &KernelError{Err: ErrUndefined, Detail: f.name}
	}
	return finite(fn(x))
}

func (f *Func) prec() int { return precAtom }
