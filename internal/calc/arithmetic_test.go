package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 + 3", "5"},
		{"10 / 4", "2.5"},
		{"4 / 2", "2.0"},
		{"1 / 3", "0.33"},
		{"2 / 3", "0.67"},
		{"2.675", "2.67"},
		{"0.1 + 0.2", "0.3"},
		{"2.5 * 2", "5.0"},
		{"(1 + 2) * 3", "9"},
		{"2 ** 10", "1024"},
		{"2 ** 100", "1267650600228229401496703205376"},
		{"-2 ** 2", "-4"},
		{"(-2) ** 2", "4"},
		{"2 ** -1", "0.5"},
		{"2 ** 3 ** 2", "512"},
		{"7 - 10", "-3"},
		{"- - 3", "3"},
		{"1e3 + 1", "1001.0"},
		{".5 * 3", "1.5"},
		{"7 / 2 * 2", "7.0"},
		{"0x1F + 1", "32"},
		{"00 + 7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			r := Evaluate(tt.expr)
			require.NoError(t, r.Err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestEvaluateFailuresShareOneMessage(t *testing.T) {
	for _, expr := range []string{
		"", "bad + + 2", "2 +", "(1 + 2", "1 + 2)", "import os", "2 $ 3",
		"1 / 0", "0 ** -1", "9 ** 9 ** 9", "(-8) ** 0.5", "2 ^ 3",
		"010", "007 + 1",
		"Sorry, I didn't catch that. Please try again.",
	} {
		t.Run(expr, func(t *testing.T) {
			r := Evaluate(expr)
			require.Error(t, r.Err)
			assert.Equal(t, InvalidSyntax, r.String())
			assert.Equal(t, KindParse, KindOf(r.Err))
		})
	}
}

func TestEvaluateDivisionByZeroIsDistinguishable(t *testing.T) {
	r := Evaluate("1 / 0")
	assert.ErrorIs(t, r.Err, ErrDivisionByZero)

	r = Evaluate("1 + ")
	assert.NotErrorIs(t, r.Err, ErrDivisionByZero)
}
