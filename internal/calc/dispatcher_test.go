package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchArithmetic(t *testing.T) {
	assert.Equal(t, []string{"5"}, Dispatch(ModeArithmetic, "2 plus 3", "", "").Steps)
	assert.Equal(t, "2.5", Dispatch(ModeArithmetic, "10 divide 4", "", "").Value)

	r := Dispatch(ModeArithmetic, "bad + + 2", "", "")
	assert.True(t, r.Failed())
	assert.Equal(t, []string{InvalidSyntax}, r.Steps)
}

func TestIndefiniteIntegral(t *testing.T) {
	r := Dispatch(ModeIndefiniteIntegral, "x**2", "", "")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, ModeIndefiniteIntegral, r.Mode)
	require.Len(t, r.Steps, 2)
	assert.Contains(t, r.Steps[0], "Given expression: ∫ x**2 dx")
	assert.Contains(t, r.Final(), "x**3/3 + C")
	assert.Equal(t, "x**3/3 + C", r.Value)
}

func TestDefiniteIntegral(t *testing.T) {
	r := Dispatch(ModeDefiniteIntegral, "x", "0", "1")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, ModeDefiniteIntegral, r.Mode)
	assert.Contains(t, r.Final(), "from 0 to 1 = 0.500")
	assert.Equal(t, "0.500", r.Value)

	r = Integrate("sin(x)", "0", "pi")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "2.00", r.Value)

	r = Integrate("x cap 2", "0", "3")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "9.00", r.Value)
}

func TestSingleLimitFallsBackToIndefinite(t *testing.T) {
	for _, limits := range [][2]string{{"0", ""}, {"", "1"}, {"  ", "1"}} {
		r := Dispatch(ModeDefiniteIntegral, "x", limits[0], limits[1])
		require.False(t, r.Failed(), r.Final())
		assert.Equal(t, ModeIndefiniteIntegral, r.Mode)
		assert.Contains(t, r.Final(), "x**2/2 + C")
	}
}

func TestTraceEchoesExpressionAsTyped(t *testing.T) {
	r := Integrate("  x cap 2 ", "", "")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, []string{
		"Step 1: Given expression: ∫ x cap 2 dx",
		"Final result: ∫ x cap 2 dx = x**3/3 + C",
	}, r.Steps)

	r = Integrate("x**2 + 2*x", "0", "1")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "Final result: ∫ x**2 + 2*x dx from 0 to 1 = 1.33", r.Final())

	r = Differentiate("x cap 3")
	assert.Equal(t, []string{"Final result: d/dx (x cap 3) = 3*x**2"}, r.Steps)
}

func TestIntegralFailures(t *testing.T) {
	tests := []struct {
		name         string
		expr, lo, hi string
		kind         Kind
	}{
		{"parse", "x +", "", "", KindParse},
		{"symbolic limit", "x", "0", "y", KindLimit},
		{"malformed limit", "x", "0", "1 +", KindLimit},
		{"not integrable", "exp(x**2)", "", "", KindKernel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Integrate(tt.expr, tt.lo, tt.hi)
			require.True(t, r.Failed())
			require.Len(t, r.Steps, 1)
			assert.True(t, IsErrorLine(r.Steps[0]), r.Steps[0])
			assert.Equal(t, tt.kind, KindOf(r.Err))
		})
	}
}

func TestDivergentDefiniteIntegral(t *testing.T) {
	r := Integrate("1/x", "0", "1")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "oo", r.Value)
	assert.Equal(t, "Final result: ∫ 1/x dx from 0 to 1 = oo", r.Final())

	r = Integrate("1 divide x", "1", "0")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "-oo", r.Value)
}

func TestDefiniteIntegralWithoutAntiderivative(t *testing.T) {
	r := Integrate("exp(x**2)", "0", "1")
	require.False(t, r.Failed(), r.Final())
	assert.Equal(t, "1.46", r.Value)
}

func TestDerivative(t *testing.T) {
	r := Dispatch(ModeDerivative, "sin(x)", "", "")
	require.False(t, r.Failed())
	require.Len(t, r.Steps, 1)
	assert.Contains(t, r.Steps[0], "cos(x)")
	assert.Equal(t, "Final result: d/dx (sin(x)) = cos(x)", r.Steps[0])

	assert.Equal(t, "3*x**2", Differentiate("x cap 3").Value)

	r = Differentiate("sin(")
	require.True(t, r.Failed())
	assert.Len(t, r.Steps, 1)
	assert.True(t, IsErrorLine(r.Final()))
}

func TestTrigSimplify(t *testing.T) {
	r := Dispatch(ModeTrigSimplify, "sin(x)**2 + cos(x)**2", "", "")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"1"}, r.Steps)

	r = SimplifyTrig("sin(pi/6)")
	assert.Equal(t, "1/2", r.Value)

	r = SimplifyTrig("tan(")
	require.True(t, r.Failed())
	assert.Len(t, r.Steps, 1)
	assert.True(t, IsErrorLine(r.Final()))
}

func TestDispatchUnknownMode(t *testing.T) {
	r := Dispatch(Mode("nope"), "1", "", "")
	assert.True(t, r.Failed())
	assert.ErrorIs(t, r.Err, ErrParse)
}
