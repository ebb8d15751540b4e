package symbolic

import (
	"math/big"
	"strings"
)

func paren(e Expr, min int) string {
	if e.prec() < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			sb.WriteString(t.String())
			continue
		}
		if isNegative(t) {
			sb.WriteString(" - ")
			sb.WriteString(negatedString(t))
			continue
		}
		sb.WriteString(" + ")
		if t.prec() == precAdd {
			sb.WriteString("(" + t.String() + ")")
			continue
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

func negatedString(t Expr) string {
	switch v := t.(type) {
	case *Num:
		return numNeg(v).String()
	case *Mul:
		return mulString(v.factors, true)
	}
	return t.String()
}

func (m *Mul) String() string { return mulString(m.factors, false) }

// mulString prints a product as numerator/denominator with the sign in front.
func mulString(factors []Expr, negate bool) string {
	coeff := big.NewRat(1, 1)
	var num, den []string
	for _, f := range factors {
		switch t := f.(type) {
		case *Num:
			coeff.Mul(coeff, t.val)
			continue
		case *Pow:
			if n, ok := t.exp.(*Num); ok && n.Sign() < 0 {
				den = append(den, denominatorString(t.base, numNeg(n)))
				continue
			}
		}
		num = append(num, paren(f, precMul))
	}
	if negate {
		coeff.Neg(coeff)
	}

	sign := ""
	if coeff.Sign() < 0 {
		sign = "-"
		coeff.Abs(coeff)
	}
	if !coeff.IsInt() || coeff.Num().Cmp(big.NewInt(1)) != 0 {
		if p := coeff.Num(); p.Cmp(big.NewInt(1)) != 0 || len(num) == 0 {
			num = append([]string{p.String()}, num...)
		}
		if q := coeff.Denom(); q.Cmp(big.NewInt(1)) != 0 {
			den = append([]string{q.String()}, den...)
		}
	}

	numStr := "1"
	if len(num) > 0 {
		numStr = strings.Join(num, "*")
	}
	switch len(den) {
	case 0:
		return sign + numStr
	case 1:
		return sign + numStr + "/" + den[0]
	}
	return sign + numStr + "/(" + strings.Join(den, "*") + ")"
}

// denominatorString prints base**exp for a positive exp as it appears after "/".
func denominatorString(base Expr, exp *Num) string {
	if exp.IsOne() {
		return paren(base, precPow)
	}
	return powString(base, exp)
}

func powString(base, exp Expr) string {
	if n, ok := exp.(*Num); ok && n.val.Cmp(big.NewRat(1, 2)) == 0 {
		return "sqrt(" + base.String() + ")"
	}
	e := exp.String()
	if exp.prec() < precAtom {
		e = "(" + e + ")"
	}
	return paren(base, precAtom) + "**" + e
}

func (p *Pow) String() string {
	if n, ok := p.exp.(*Num); ok {
		if n.val.Cmp(big.NewRat(-1, 1)) == 0 {
			return "1/" + paren(p.base, precPow)
		}
		if n.val.Cmp(big.NewRat(-1, 2)) == 0 {
			return "1/" + powString(p.base, Frac(1, 2))
		}
	}
	return powString(p.base, p.exp)
}

func (f *Func) String() string {
	name := f.name
	if name == "abs" {
		name = "Abs"
	}
	return name + "(" + f.arg.String() + ")"
}
