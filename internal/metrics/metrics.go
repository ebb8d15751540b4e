package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	evaluation  *prometheus.HistogramVec
	speech      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voicecalc_submissions_total",
				Help: "Calculator submissions by mode and status",
			},
			[]string{"mode", "status"},
		),
		evaluation: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voicecalc_evaluation_seconds",
				Help:    "Time spent evaluating a submission",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"mode"},
		),
		speech: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voicecalc_speech_total",
				Help: "Speech input and output attempts by direction and status",
			},
			[]string{"direction", "status"},
		),
	}
	m.registry.MustRegister(
		m.submissions,
		m.evaluation,
		m.speech,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements calc.Recorder.
func (m *Metrics) Observe(mode calc.Mode, status string, elapsed time.Duration) {
	m.submissions.WithLabelValues(string(mode), status).Inc()
	m.evaluation.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
}

// Speech counts one speech attempt; direction is "input" or "output".
func (m *Metrics) Speech(direction string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.speech.WithLabelValues(direction, status).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var _ calc.Recorder = (*Metrics)(nil)
