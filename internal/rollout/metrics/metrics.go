package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for configuration changes.
type Metrics struct {
	ConfigWrites   *prometheus.CounterVec
	RejectedWrites *prometheus.CounterVec
}

// New creates a new Metrics instance with all rollout config metrics registered.
func New() *Metrics {
	return &Metrics{
		ConfigWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "switchyard_config_writes_total",
			Help: "Accepted configuration writes by key",
		}, []string{"key"}),

		RejectedWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "switchyard_config_rejected_writes_total",
			Help: "Configuration writes rejected at the validation boundary by key",
		}, []string{"key"}),
	}
}

// IncWrite records an accepted configuration write.
func (m *Metrics) IncWrite(key string) {
	if m != nil {
		m.ConfigWrites.WithLabelValues(key).Inc()
	}
}

// IncRejectedWrite records a write rejected by validation.
func (m *Metrics) IncRejectedWrite(key string) {
	if m != nil {
		m.RejectedWrites.WithLabelValues(key).Inc()
	}
}
