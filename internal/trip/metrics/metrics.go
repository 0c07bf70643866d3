package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for trip resolution and assessment.
type Metrics struct {
	// Resolutions by outcome ("matched", "fallback") and purpose
	ResolutionOutcome *prometheus.CounterVec

	// Assessments by entry type
	AssessmentOutcome *prometheus.CounterVec

	// Enrichment latencies and failures by source
	EnrichmentLatency  *prometheus.HistogramVec
	EnrichmentFailures *prometheus.CounterVec

	// Result cache lookups by result ("hit", "miss", "error")
	CacheLookups *prometheus.CounterVec

	// Overall resolve latency including enrichment
	ResolveLatency prometheus.Histogram

	// Notices handed to the notifier, by kind
	NoticesPublished *prometheus.CounterVec
}

// New registers trip metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers trip metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ResolutionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_trip_resolutions_total",
			Help: "Total trip resolutions by outcome and purpose",
		}, []string{"outcome", "purpose"}),

		AssessmentOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_trip_assessments_total",
			Help: "Total quick assessments by entry type",
		}, []string{"entry_type"}),

		EnrichmentLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripcheck_trip_enrichment_duration_seconds",
			Help:    "Duration of optional enrichment calls by source",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}), // source: "explainer", "visa_api"

		EnrichmentFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_trip_enrichment_failures_total",
			Help: "Enrichment calls that failed or timed out, by source",
		}, []string{"source"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_trip_cache_lookups_total",
			Help: "Result cache lookups by result",
		}, []string{"result"}),

		ResolveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripcheck_trip_resolve_duration_seconds",
			Help:    "Duration of full trip resolution including enrichment",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		NoticesPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tripcheck_trip_notices_published_total",
			Help: "Trip notices handed to the notifier, by kind",
		}, []string{"kind"}),
	}
}

// IncrementResolution records a trip resolution outcome.
func (m *Metrics) IncrementResolution(outcome, purpose string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(outcome, purpose).Inc()
	}
}

// IncrementAssessment records an assessment by entry type.
func (m *Metrics) IncrementAssessment(entryType string) {
	if m != nil {
		m.AssessmentOutcome.WithLabelValues(entryType).Inc()
	}
}

// ObserveEnrichmentLatency records the duration of an enrichment call.
func (m *Metrics) ObserveEnrichmentLatency(source string, d time.Duration) {
	if m != nil {
		m.EnrichmentLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementEnrichmentFailure(source string) {
	if m != nil {
		m.EnrichmentFailures.WithLabelValues(source).Inc()
	}
}

// IncrementCacheLookup records a cache lookup result.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveResolveLatency records the total resolve duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementNotice(kind string) {
	if m != nil {
		m.NoticesPublished.WithLabelValues(kind).Inc()
	}
}
