package calc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"text/scanner"
)

// maxResultBits caps integer powers so a spoken "9 cap 9 cap 9" cannot
// exhaust memory.
const maxResultBits = 1 << 16

var errOverflow = errors.New("result too large")

// NumericResult is the outcome of the arithmetic evaluator: a value printed
// the way the calculator reports it, or a failure.
type NumericResult struct {
	Value string
	Err   error
}

// String returns the value or the single user-facing failure text.
func (r NumericResult) String() string {
	if r.Err != nil {
		return InvalidSyntax
	}
	return r.Value
}

// Evaluate computes a normalized arithmetic expression. Integers are exact,
// "/" always yields a float, and float results are rounded to 2 decimals.
// The grammar is restricted to numbers, + - * / **, and parentheses.
func Evaluate(expr string) NumericResult {
	tree, err := parseArithmetic(expr)
	if err != nil {
		return NumericResult{Err: newError(KindParse, err)}
	}
	v, err := tree.eval()
	if err != nil {
		return NumericResult{Err: newError(KindParse, err)}
	}
	return NumericResult{Value: v.String()}
}

// ===== values =====

// number is an exact integer (i != nil) or a float.
type number struct {
	i *big.Int
	f float64
}

func intNumber(i *big.Int) number { return number{i: i} }

func floatNumber(f float64) (number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return number{}, errOverflow
	}
	return number{f: f}, nil
}

func (n number) isInt() bool { return n.i != nil }

func (n number) float() (float64, error) {
	if !n.isInt() {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	if math.IsInf(f, 0) {
		return 0, errOverflow
	}
	return f, nil
}

func (n number) isZero() bool {
	if n.isInt() {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

func (n number) String() string {
	if n.isInt() {
		return n.i.String()
	}
	return formatFloat(roundHalfEven(n.f, 2))
}

func roundHalfEven(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// formatFloat prints the shortest representation, keeping ".0" on whole values.
func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ===== syntax tree =====

type node interface {
	eval() (number, error)
}

type literal number

func (l literal) eval() (number, error) { return number(l), nil }

// unary minus or plus
type unaryOp struct {
	code rune
	x    node
}

func (u *unaryOp) eval() (number, error) {
	v, err := u.x.eval()
	if err != nil || u.code == '+' {
		return v, err
	}
	if v.isInt() {
		return intNumber(new(big.Int).Neg(v.i)), nil
	}
	return floatNumber(-v.f)
}

// binaryOp covers + - * / and power, encoded as '^'
type binaryOp struct {
	code        rune
	left, right node
}

func (b *binaryOp) eval() (number, error) {
	x, err := b.left.eval()
	if err != nil {
		return number{}, err
	}
	y, err := b.right.eval()
	if err != nil {
		return number{}, err
	}

	switch b.code {
	case '/':
		return divide(x, y)
	case '^':
		return power(x, y)
	}

	if x.isInt() && y.isInt() {
		switch b.code {
		case '+':
			return intNumber(new(big.Int).Add(x.i, y.i)), nil
		case '-':
			return intNumber(new(big.Int).Sub(x.i, y.i)), nil
		case '*':
			return intNumber(new(big.Int).Mul(x.i, y.i)), nil
		}
	}

	xf, err := x.float()
	if err != nil {
		return number{}, err
	}
	yf, err := y.float()
	if err != nil {
		return number{}, err
	}
	switch b.code {
	case '+':
		return floatNumber(xf + yf)
	case '-':
		return floatNumber(xf - yf)
	case '*':
		return floatNumber(xf * yf)
	}
	return number{}, fmt.Errorf("unknown operator %q", b.code)
}

func divide(x, y number) (number, error) {
	if y.isZero() {
		return number{}, ErrDivisionByZero
	}
	if x.isInt() && y.isInt() {
		f, _ := new(big.Rat).SetFrac(x.i, y.i).Float64()
		return floatNumber(f)
	}
	xf, err := x.float()
	if err != nil {
		return number{}, err
	}
	yf, err := y.float()
	if err != nil {
		return number{}, err
	}
	return floatNumber(xf / yf)
}

func power(x, y number) (number, error) {
	if x.isZero() && y.isInt() && y.i.Sign() < 0 {
		return number{}, ErrDivisionByZero
	}
	if x.isInt() && y.isInt() && y.i.Sign() >= 0 {
		if x.i.BitLen() > 1 && (!y.i.IsInt64() || int64(x.i.BitLen())*y.i.Int64() > maxResultBits) {
			return number{}, errOverflow
		}
		return intNumber(new(big.Int).Exp(x.i, y.i, nil)), nil
	}

	xf, err := x.float()
	if err != nil {
		return number{}, err
	}
	yf, err := y.float()
	if err != nil {
		return number{}, err
	}
	if xf == 0 && yf < 0 {
		return number{}, ErrDivisionByZero
	}
	if xf < 0 && yf != math.Trunc(yf) {
		return number{}, errors.New("complex result")
	}
	return floatNumber(math.Pow(xf, yf))
}

// ===== parser =====

type arithParser struct {
	s    scanner.Scanner
	tok  rune
	text string
	err  error
}

func parseArithmetic(src string) (node, error) {
	p := &arithParser{}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = errors.New(msg)
		}
	}
	p.next()
	if p.tok == scanner.EOF {
		return nil, errors.New("empty expression")
	}

	tree := p.expr()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail()
	}
	if p.err != nil {
		return nil, p.err
	}
	return tree, nil
}

func (p *arithParser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *arithParser) fail() {
	if p.err != nil {
		return
	}
	switch p.tok {
	case scanner.EOF:
		p.err = errors.New("unexpected end of expression")
	case scanner.Ident:
		p.err = fmt.Errorf("unknown name %q", p.text)
	default:
		p.err = fmt.Errorf("unexpected %q at column %d", p.text, p.s.Position.Column)
	}
}

func (p *arithParser) isPow() bool {
	if p.tok == '*' && p.s.Peek() == '*' {
		p.s.Next()
		return true
	}
	return false
}

// expr = term {("+" | "-") term}
func (p *arithParser) expr() node {
	left := p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		code := p.tok
		p.next()
		left = &binaryOp{code: code, left: left, right: p.term()}
	}
	return left
}

// term = unary {("*" | "/") unary}
func (p *arithParser) term() node {
	left := p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		code := p.tok
		p.next()
		left = &binaryOp{code: code, left: left, right: p.unary()}
	}
	return left
}

// unary = ("+" | "-") unary | power
func (p *arithParser) unary() node {
	if p.tok == '+' || p.tok == '-' {
		code := p.tok
		p.next()
		return &unaryOp{code: code, x: p.unary()}
	}
	return p.power()
}

// power = factor ["**" unary]
func (p *arithParser) power() node {
	base := p.factor()
	if p.err == nil && p.isPow() {
		p.next()
		return &binaryOp{code: '^', left: base, right: p.unary()}
	}
	return base
}

// factor = number | "(" expr ")"
func (p *arithParser) factor() node {
	switch p.tok {
	case scanner.Int:
		if legacyOctal(p.text) {
			p.err = fmt.Errorf("leading zeros in %q", p.text)
			return literal{}
		}
		i, ok := new(big.Int).SetString(p.text, 0)
		if !ok {
			p.err = fmt.Errorf("bad number %q", p.text)
			return literal{}
		}
		p.next()
		return literal(intNumber(i))
	case scanner.Float:
		f, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			p.err = fmt.Errorf("bad number %q", p.text)
			return literal{}
		}
		p.next()
		return literal(number{f: f})
	case '(':
		p.next()
		e := p.expr()
		if p.err == nil && p.tok != ')' {
			p.fail()
		}
		p.next()
		return e
	}
	p.fail()
	return literal{}
}

// legacyOctal reports a decimal literal with leading zeros such as "010".
// Only 0x, 0o and 0b prefixes select another base; all-zero literals are fine.
func legacyOctal(text string) bool {
	if len(text) < 2 || text[0] != '0' {
		return false
	}
	if c := text[1]; (c < '0' || c > '9') && c != '_' {
		return false
	}
	return strings.Trim(text, "0_") != ""
}
