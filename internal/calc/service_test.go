package calc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type observation struct {
	mode   Mode
	status string
}

type recorderStub struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recorderStub) Observe(mode Mode, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{mode: mode, status: status})
}

func newTestService() (Service, *recorderStub) {
	rec := &recorderStub{}
	return NewService(zap.NewNop().Sugar(), rec), rec
}

func TestBasicSpeaksBareResult(t *testing.T) {
	svc, rec := newTestService()
	out := svc.Basic(context.Background(), "2 plus 3", nil)

	assert.Equal(t, []string{"You said: 2 plus 3", "Result: 5"}, out.Lines)
	assert.Equal(t, "5", out.Speech)
	assert.Equal(t, []observation{{ModeArithmetic, "ok"}}, rec.obs)
}

func TestBasicShortCircuitsCaptureFailure(t *testing.T) {
	svc, rec := newTestService()
	sentence := "Sorry, I didn't catch that. Please try again."
	out := svc.Basic(context.Background(), "", errors.New(sentence))

	assert.Equal(t, []string{sentence}, out.Lines)
	assert.Equal(t, sentence, out.Speech)
	assert.Equal(t, KindInput, KindOf(out.Result.Err))
	assert.NotContains(t, out.Lines, InvalidSyntax)
	assert.Equal(t, []observation{{ModeArithmetic, "capture_error"}}, rec.obs)
}

func TestExpressionAcknowledgement(t *testing.T) {
	svc, _ := newTestService()
	out := svc.Expression(context.Background(), "10 divide 4")
	assert.Equal(t, []string{"Result: 2.5"}, out.Lines)
	assert.Equal(t, "The result is 2.5", out.Speech)

	out = svc.Expression(context.Background(), "bad + + 2")
	assert.Equal(t, []string{"Result: Error: Invalid Syntax"}, out.Lines)

	assert.Empty(t, svc.Expression(context.Background(), "   ").Lines)
}

func TestCalculusSurfacesAreDisplayOnly(t *testing.T) {
	svc, rec := newTestService()

	out := svc.Integrate(context.Background(), "x", "0", "1")
	assert.Len(t, out.Lines, 2)
	assert.Empty(t, out.Speech)

	out = svc.Differentiate(context.Background(), "sin(x)")
	assert.Len(t, out.Lines, 1)
	assert.Empty(t, out.Speech)

	out = svc.Integrate(context.Background(), "exp(x**2)", "", "")
	assert.True(t, out.Result.Failed())

	assert.Equal(t, []observation{
		{ModeDefiniteIntegral, "ok"},
		{ModeDerivative, "ok"},
		{ModeIndefiniteIntegral, "error"},
	}, rec.obs)
}

func TestTrigonometryAcknowledgement(t *testing.T) {
	svc, _ := newTestService()
	out := svc.Trigonometry(context.Background(), "sin(x)**2 + cos(x)**2")
	assert.Equal(t, []string{"Result: 1"}, out.Lines)
	assert.Equal(t, "The result is 1", out.Speech)
}
