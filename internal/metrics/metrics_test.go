package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(calc.ModeArithmetic, "ok", time.Millisecond)
	m.Observe(calc.ModeArithmetic, "ok", time.Millisecond)
	m.Observe(calc.ModeDerivative, "error", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("arithmetic", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("derivative", "error")))

	m.Speech("output", errors.New("x"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.speech.WithLabelValues("output", "error")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe(calc.ModeTrigSimplify, "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `voicecalc_submissions_total{mode="trig_simplify",status="ok"} 1`)
	assert.Contains(t, string(body), "voicecalc_evaluation_seconds_bucket")
}
