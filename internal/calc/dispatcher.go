package calc

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/voice_calc/internal/symbolic"
)

// Variable is the free variable of every calculus mode.
const Variable = "x"

// significantDigits of a definite integral value
const significantDigits = 3

// Mode is the evaluation mode of one submission.
type Mode string

const (
	ModeArithmetic         Mode = "arithmetic"
	ModeIndefiniteIntegral Mode = "indefinite_integral"
	ModeDefiniteIntegral   Mode = "definite_integral"
	ModeDerivative         Mode = "derivative"
	ModeTrigSimplify       Mode = "trig_simplify"
)

// Result is the common shape of every mode: an ordered step trace whose last
// element holds the final result (or the failure line).
type Result struct {
	Mode  Mode
	Steps []string
	// Value is the bare final value, empty on failure.
	Value string
	Err   error
}

// Final returns the last step.
func (r Result) Final() string {
	if len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[len(r.Steps)-1]
}

func (r Result) Failed() bool { return r.Err != nil }

func failed(mode Mode, err error) Result {
	return Result{Mode: mode, Steps: []string{errorLine(err)}, Err: err}
}

// Dispatch evaluates expr in the given mode. lower and upper are only read
// by the integral modes; a blank limit counts as absent, and a definite
// integral needs both. Failures never escape: they come back as a one-line
// "Error: <cause>" trace.
func Dispatch(mode Mode, expr, lower, upper string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(mode, newError(KindKernel, fmt.Errorf("%w: %v", ErrKernel, r)))
		}
	}()

	switch mode {
	case ModeArithmetic:
		return Arithmetic(expr)
	case ModeIndefiniteIntegral, ModeDefiniteIntegral:
		return Integrate(expr, lower, upper)
	case ModeDerivative:
		return Differentiate(expr)
	case ModeTrigSimplify:
		return SimplifyTrig(expr)
	}
	return failed(mode, newError(KindParse, fmt.Errorf("%w: unknown mode %q", ErrParse, mode)))
}

// Arithmetic normalizes spoken operators (x included) and evaluates.
func Arithmetic(raw string) Result {
	r := Evaluate(Normalize(raw))
	if r.Err != nil {
		return Result{Mode: ModeArithmetic, Steps: []string{InvalidSyntax}, Err: r.Err}
	}
	return Result{Mode: ModeArithmetic, Steps: []string{r.Value}, Value: r.Value}
}

// parseSymbolic parses the normalized text; the returned string is the
// input as typed, which is what the trace echoes.
func parseSymbolic(raw string, opts ...symbolic.ParseOption) (string, symbolic.Expr, error) {
	typed := strings.TrimSpace(raw)
	e, err := symbolic.Parse(strings.TrimSpace(NormalizeFor(ProfileSymbolic, raw)), opts...)
	if err != nil {
		return typed, nil, newError(KindParse, err)
	}
	return typed, e, nil
}

func parseLimit(raw string) (symbolic.Expr, error) {
	text := strings.TrimSpace(NormalizeFor(ProfileSymbolic, raw))
	e, err := symbolic.Parse(text)
	if err != nil {
		return nil, newError(KindLimit, fmt.Errorf("%w %q: %v", ErrLimit, raw, err))
	}
	if free := symbolic.FreeSymbols(e); len(free) > 0 {
		return nil, newError(KindLimit, fmt.Errorf("%w %q: not a number", ErrLimit, raw))
	}
	return e, nil
}

func present(limit string) bool { return strings.TrimSpace(limit) != "" }

// Integrate returns the antiderivative trace, or the definite value to three
// significant digits when both limits are given.
func Integrate(raw, lower, upper string) Result {
	mode := ModeIndefiniteIntegral
	if present(lower) && present(upper) {
		mode = ModeDefiniteIntegral
	}

	text, e, err := parseSymbolic(raw)
	if err != nil {
		return failed(mode, err)
	}
	given := fmt.Sprintf("∫ %s dx", text)
	steps := []string{"Step 1: Given expression: " + given}

	if mode == ModeIndefiniteIntegral {
		anti, err := symbolic.Integrate(e, Variable)
		if err != nil {
			return failed(mode, newError(KindKernel, err))
		}
		value := anti.String() + " + C"
		steps = append(steps, fmt.Sprintf("Final result: %s = %s", given, value))
		return Result{Mode: mode, Steps: steps, Value: value}
	}

	lo, err := parseLimit(lower)
	if err != nil {
		return failed(mode, err)
	}
	hi, err := parseLimit(upper)
	if err != nil {
		return failed(mode, err)
	}
	v, err := symbolic.DefiniteIntegral(e, Variable, lo, hi)
	if err != nil {
		return failed(mode, newError(KindKernel, err))
	}
	value := symbolic.FormatSignificant(v, significantDigits)
	steps = append(steps, fmt.Sprintf("Final result: %s from %s to %s = %s",
		given, strings.TrimSpace(lower), strings.TrimSpace(upper), value))
	return Result{Mode: mode, Steps: steps, Value: value}
}

// Differentiate returns a single-line trace with the first derivative.
func Differentiate(raw string) Result {
	text, e, err := parseSymbolic(raw)
	if err != nil {
		return failed(ModeDerivative, err)
	}
	d, err := symbolic.Differentiate(e, Variable)
	if err != nil {
		return failed(ModeDerivative, newError(KindKernel, err))
	}
	value := d.String()
	return Result{
		Mode:  ModeDerivative,
		Steps: []string{fmt.Sprintf("Final result: d/dx (%s) = %s", text, value)},
		Value: value,
	}
}

// SimplifyTrig parses without early evaluation and simplifies; the trace is
// the simplified form alone.
func SimplifyTrig(raw string) Result {
	_, e, err := parseSymbolic(raw, symbolic.WithoutEvaluation())
	if err != nil {
		return failed(ModeTrigSimplify, err)
	}
	s, err := symbolic.Simplify(e)
	if err != nil {
		return failed(ModeTrigSimplify, newError(KindKernel, err))
	}
	value := s.String()
	return Result{Mode: ModeTrigSimplify, Steps: []string{value}, Value: value}
}
