package letter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rendered letters.
type Metrics struct {
	Rendered *prometheus.CounterVec
}

// NewMetrics registers letter metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Rendered: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_letters_rendered_total",
			Help: "Invitation letters rendered by template and output format",
		}, []string{"template", "format"}),
	}
}

func (m *Metrics) IncrementRendered(template TemplateID, format string) {
	if m != nil {
		m.Rendered.WithLabelValues(string(template), format).Inc()
	}
}
