package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility policy.
type Metrics struct {
	// Verdicts by outcome and the gate that produced them
	Verdicts *prometheus.CounterVec

	// External oracle calls by result
	ExternalChecks *prometheus.CounterVec
}

// New creates a new Metrics instance with all eligibility metrics registered.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "switchyard_eligibility_verdicts_total",
			Help: "Eligibility verdicts by outcome and deciding gate",
		}, []string{"outcome", "gate"}), // gate: "disabled", "percentage", "functional", "behavioral", "contextual", "error"

		ExternalChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "switchyard_eligibility_external_checks_total",
			Help: "External eligibility oracle calls by result",
		}, []string{"result"}), // result: "eligible", "ineligible", "error"
	}
}

// IncVerdict records an evaluation outcome.
func (m *Metrics) IncVerdict(outcome, gate string) {
	if m != nil {
		m.Verdicts.WithLabelValues(outcome, gate).Inc()
	}
}

// IncExternalCheck records one oracle call.
func (m *Metrics) IncExternalCheck(result string) {
	if m != nil {
		m.ExternalChecks.WithLabelValues(result).Inc()
	}
}
