package calc

import "strings"

// Rule is one literal substitution of the spoken-operator table.
type Rule struct {
	From string
	To   string
}

// Profile selects which part of the substitution table applies.
type Profile int

const (
	// ProfileArithmetic applies the whole table, "x" included: on the
	// arithmetic path "x" is the spoken multiplication sign.
	ProfileArithmetic Profile = iota
	// ProfileSymbolic keeps "x" as the calculus variable.
	ProfileSymbolic
)

// order matters: later rules see the text left behind by earlier ones
var spokenOperators = []Rule{
	{From: "plus", To: "+"},
	{From: "minus", To: "-"},
	{From: "into", To: "*"},
	{From: "times", To: "*"},
	{From: "divide", To: "/"},
	{From: "cap", To: "**"},
}

var spokenMultiply = Rule{From: "x", To: "*"}

// Rules returns the substitution table of a profile in application order.
func Rules(p Profile) []Rule {
	out := append([]Rule(nil), spokenOperators...)
	if p == ProfileArithmetic {
		out = append(out, spokenMultiply)
	}
	return out
}

// Normalize rewrites spoken operators for the arithmetic path.
func Normalize(raw string) string {
	return NormalizeFor(ProfileArithmetic, raw)
}

// NormalizeFor rewrites spoken operators with the table of profile p. No
// validation happens here; malformed output is rejected by the evaluators.
func NormalizeFor(p Profile, raw string) string {
	out := raw
	for _, rule := range Rules(p) {
		out = strings.ReplaceAll(out, rule.From, rule.To)
	}
	return out
}
