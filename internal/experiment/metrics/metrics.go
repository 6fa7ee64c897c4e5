package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the experiment runner.
type Metrics struct {
	// Run outcomes by experiment
	Outcomes *prometheus.CounterVec

	// Execution latency per path
	PathDuration *prometheus.HistogramVec

	// Sink hand-offs that failed
	SinkErrors prometheus.Counter
}

// New creates a new Metrics instance with all experiment metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "switchyard_experiment_outcomes_total",
			Help: "Experiment run outcomes by experiment name",
		}, []string{"experiment", "outcome"}), // outcome: "matched", "mismatched", "skipped"

		PathDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "switchyard_experiment_path_duration_seconds",
			Help:    "Duration of control and candidate executions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"experiment", "path"}), // path: "control", "candidate"

		SinkErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "switchyard_experiment_sink_errors_total",
			Help: "Comparison publications that panicked in the sink",
		}),
	}
}

// IncOutcome records one run outcome.
func (m *Metrics) IncOutcome(experiment, outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(experiment, outcome).Inc()
	}
}

// ObservePath records the duration of one path execution.
func (m *Metrics) ObservePath(experiment, path string, d time.Duration) {
	if m != nil {
		m.PathDuration.WithLabelValues(experiment, path).Observe(d.Seconds())
	}
}

// IncSinkError records a failed publication hand-off.
func (m *Metrics) IncSinkError() {
	if m != nil {
		m.SinkErrors.Inc()
	}
}
