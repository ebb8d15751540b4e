package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"text/scanner"
)

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithoutEvaluation keeps the tree exactly as written: no folding, no
// collection of like terms and no exact function values.
func WithoutEvaluation() ParseOption {
	return func(p *parser) { p.evaluate = false }
}

// Parse reads an infix expression. Accepted syntax: numbers, identifiers,
// pi, E, + - * / ** ^ and parentheses, and calls of the elementary
// functions listed by FunctionNames (plus sqrt, ln and the arc* aliases).
func Parse(src string, opts ...ParseOption) (e Expr, err error) {
	defer guard(&err)

	p := &parser{evaluate: true}
	for _, opt := range opts {
		opt(p)
	}
	p.init(src)
	if p.tok == scanner.EOF {
		raise(ErrSyntax, "empty expression")
	}
	e = p.expr()
	if p.tok != scanner.EOF {
		p.unexpected()
	}
	return e, nil
}

// MustParse is Parse for trusted input; it panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	s        scanner.Scanner
	tok      rune
	text     string
	col      int
	evaluate bool
}

func (p *parser) init(src string) {
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		raise(ErrSyntax, msg)
	}
	p.next()
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.col = p.s.Position.Column
}

func (p *parser) unexpected() {
	if p.tok == scanner.EOF {
		raise(ErrSyntax, "unexpected end of input")
	}
	raise(ErrSyntax, fmt.Sprintf("unexpected %q at column %d", p.text, p.col))
}

// isPow consumes "**" or "^" when it is the current token.
func (p *parser) isPow() bool {
	switch {
	case p.tok == '^':
		return true
	case p.tok == '*' && p.s.Peek() == '*':
		p.s.Next()
		return true
	}
	return false
}

func (p *parser) expr() Expr {
	left := p.term()
	for p.tok == '+' || p.tok == '-' {
		op := p.tok
		p.next()
		right := p.term()
		if op == '-' {
			right = p.neg(right)
		}
		left = p.add(left, right)
	}
	return left
}

func (p *parser) term() Expr {
	left := p.unary()
	for p.tok == '*' || p.tok == '/' {
		op := p.tok
		p.next()
		right := p.unary()
		if op == '/' {
			right = p.pow(right, Int(-1))
		}
		left = p.mul(left, right)
	}
	return left
}

func (p *parser) unary() Expr {
	switch p.tok {
	case '+':
		p.next()
		return p.unary()
	case '-':
		p.next()
		return p.neg(p.unary())
	}
	return p.power()
}

func (p *parser) power() Expr {
	base := p.primary()
	if p.isPow() {
		p.next()
		return p.pow(base, p.unary())
	}
	return base
}

func (p *parser) primary() Expr {
	switch p.tok {
	case scanner.Int, scanner.Float:
		r, ok := new(big.Rat).SetString(p.text)
		if !ok {
			raise(ErrSyntax, fmt.Sprintf("bad number %q", p.text))
		}
		p.next()
		return &Num{val: r}
	case scanner.Ident:
		name := p.text
		p.next()
		return p.identifier(name)
	case '(':
		p.next()
		e := p.expr()
		if p.tok != ')' {
			p.unexpected()
		}
		p.next()
		return e
	}
	p.unexpected()
	return nil
}

func (p *parser) identifier(name string) Expr {
	if p.tok == '(' {
		if !IsFunction(name) {
			raise(ErrSyntax, "unknown function "+name)
		}
		p.next()
		arg := p.expr()
		if p.tok != ')' {
			p.unexpected()
		}
		p.next()
		return p.call(name, arg)
	}
	switch name {
	case "pi", "π":
		return Pi
	case "E":
		return E
	}
	if IsFunction(name) {
		raise(ErrSyntax, "function "+name+" needs an argument")
	}
	return Symbol(name)
}

// ===== tree builders =====

func (p *parser) add(a, b Expr) Expr {
	if p.evaluate {
		return AddOf(a, b)
	}
	if sum, ok := a.(*Add); ok {
		return &Add{terms: append(append([]Expr(nil), sum.terms...), b)}
	}
	return &Add{terms: []Expr{a, b}}
}

func (p *parser) mul(a, b Expr) Expr {
	if p.evaluate {
		return MulOf(a, b)
	}
	if prod, ok := a.(*Mul); ok {
		return &Mul{factors: append(append([]Expr(nil), prod.factors...), b)}
	}
	return &Mul{factors: []Expr{a, b}}
}

func (p *parser) neg(e Expr) Expr {
	if p.evaluate {
		return Neg(e)
	}
	if n, ok := e.(*Num); ok {
		return numNeg(n)
	}
	return &Mul{factors: []Expr{Int(-1), e}}
}

func (p *parser) pow(base, exp Expr) Expr {
	if p.evaluate {
		return PowOf(base, exp)
	}
	return &Pow{base: base, exp: exp}
}

func (p *parser) call(name string, arg Expr) Expr {
	if p.evaluate {
		return FuncOf(name, arg)
	}
	if alias, ok := funcAliases[name]; ok {
		name = alias
	}
	if name == "sqrt" {
		return &Pow{base: arg, exp: Frac(1, 2)}
	}
	return &Func{name: name, arg: arg}
}
