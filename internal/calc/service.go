package calc

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Outcome is what a surface hands to the reporter: display lines in order,
// then an optional spoken acknowledgement.
type Outcome struct {
	Result Result
	Lines  []string
	Speech string
}

// Recorder receives one observation per submission.
type Recorder interface {
	Observe(mode Mode, status string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(Mode, string, time.Duration) {}

// Service is the entry point of the five calculator surfaces.
type Service interface {
	// Basic handles a voice submission. A capture failure short-circuits:
	// its sentence is reported as-is and never evaluated.
	Basic(ctx context.Context, heard string, captureErr error) Outcome
	Expression(ctx context.Context, text string) Outcome
	Integrate(ctx context.Context, expr, lower, upper string) Outcome
	Differentiate(ctx context.Context, expr string) Outcome
	Trigonometry(ctx context.Context, expr string) Outcome
}

type service struct {
	log *zap.SugaredLogger
	rec Recorder
}

func NewService(log *zap.SugaredLogger, rec Recorder) Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &service{log: log, rec: rec}
}

func (s *service) run(mode Mode, input string, fn func() Result) Result {
	start := time.Now()
	res := fn()
	elapsed := time.Since(start)

	status := "ok"
	if res.Failed() {
		status = "error"
		s.log.Infow("[calc] submission failed",
			"mode", mode, "input", input, "kind", KindOf(res.Err), "err", res.Err)
	} else {
		s.log.Debugw("[calc] submission", "mode", res.Mode, "input", input, "value", res.Value, "elapsed", elapsed)
	}
	s.rec.Observe(mode, status, elapsed)
	return res
}

func (s *service) Basic(_ context.Context, heard string, captureErr error) Outcome {
	if captureErr != nil {
		s.log.Warnw("[calc] voice input not captured", "err", captureErr)
		s.rec.Observe(ModeArithmetic, "capture_error", 0)
		msg := captureErr.Error()
		return Outcome{
			Result: Result{Mode: ModeArithmetic, Steps: []string{msg}, Err: newError(KindInput, captureErr)},
			Lines:  []string{msg},
			Speech: msg,
		}
	}

	res := s.run(ModeArithmetic, heard, func() Result { return Dispatch(ModeArithmetic, heard, "", "") })
	result := res.Final()
	return Outcome{
		Result: res,
		Lines:  []string{"You said: " + heard, "Result: " + result},
		Speech: result,
	}
}

func (s *service) Expression(_ context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{}
	}
	res := s.run(ModeArithmetic, text, func() Result { return Dispatch(ModeArithmetic, text, "", "") })
	result := res.Final()
	return Outcome{
		Result: res,
		Lines:  []string{"Result: " + result},
		Speech: "The result is " + result,
	}
}

func (s *service) Integrate(_ context.Context, expr, lower, upper string) Outcome {
	mode := ModeIndefiniteIntegral
	if present(lower) && present(upper) {
		mode = ModeDefiniteIntegral
	}
	res := s.run(mode, expr, func() Result { return Dispatch(mode, expr, lower, upper) })
	return Outcome{Result: res, Lines: res.Steps}
}

func (s *service) Differentiate(_ context.Context, expr string) Outcome {
	res := s.run(ModeDerivative, expr, func() Result { return Dispatch(ModeDerivative, expr, "", "") })
	return Outcome{Result: res, Lines: res.Steps}
}

func (s *service) Trigonometry(_ context.Context, expr string) Outcome {
	res := s.run(ModeTrigSimplify, expr, func() Result { return Dispatch(ModeTrigSimplify, expr, "", "") })
	result := res.Final()
	return Outcome{
		Result: res,
		Lines:  []string{"Result: " + result},
		Speech: "The result is " + result,
	}
}
