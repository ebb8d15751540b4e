package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpokenOperators(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2 plus 3", "2 + 3"},
		{"10 minus 4", "10 - 4"},
		{"3 into 4", "3 * 4"},
		{"3 times 4", "3 * 4"},
		{"10 divide 4", "10 / 4"},
		{"2 cap 8", "2 ** 8"},
		{"5 x 3", "5 * 3"},
		{"1 plus 2 plus 3", "1 + 2 + 3"},
		{"2 cap 2 x 3 minus 1", "2 ** 2 * 3 - 1"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"2 plus 3", "4 x 5 divide 2", "7 cap 2 minus 1", "(1 + 2) * 3"} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), raw)
	}
}

func TestNormalizeLeavesCanonicalArithmeticUnchanged(t *testing.T) {
	for _, expr := range []string{"(1 + 2) * 3 / 4 - 5 ** 2", "2.5*4", "-7 + +3", ""} {
		assert.Equal(t, expr, Normalize(expr))
	}
}

func TestSymbolicProfileKeepsVariable(t *testing.T) {
	assert.Equal(t, "x ** 2 + 1", NormalizeFor(ProfileSymbolic, "x cap 2 plus 1"))
	assert.Equal(t, "sin(x) * x", NormalizeFor(ProfileSymbolic, "sin(x) times x"))
	assert.Equal(t, "sin(*)", Normalize("sin(x)"))
}

func TestRulesOrder(t *testing.T) {
	arith := Rules(ProfileArithmetic)
	sym := Rules(ProfileSymbolic)
	assert.Len(t, arith, 7)
	assert.Len(t, sym, 6)
	assert.Equal(t, Rule{From: "plus", To: "+"}, arith[0])
	assert.Equal(t, Rule{From: "x", To: "*"}, arith[6])
	assert.Equal(t, Rule{From: "cap", To: "**"}, sym[5])
}
