package trip

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/blake2b"

	"tripcheck/internal/catalog"
	"tripcheck/internal/trip/metrics"
	"tripcheck/internal/trip/ports"
	"tripcheck/pkg/platform/sentinel"
	"tripcheck/pkg/requestcontext"
)

const (
	defaultEnrichmentTimeout = 2 * time.Second
	defaultCacheTTL          = 10 * time.Minute
)

// Service resolves trips and assessments against an injected, immutable
// catalog. Optional collaborators (cache, enrichment sources, notifier) may
// be nil; the structured result never depends on them.
type Service struct {
	catalog   *catalog.Catalog
	links     *catalog.VisaLinks
	cache     ports.ResultCache
	explainer ports.ExplainerPort
	visaAPI   ports.VisaStatusPort
	notifier  ports.NotifierPort
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	enrichmentTimeout time.Duration
	cacheTTL          time.Duration
}

// Option configures a Service.
type Option func(*Service)

func WithVisaLinks(links *catalog.VisaLinks) Option {
	return func(s *Service) {
		s.links = links
	}
}

// WithCache enables result caching keyed by catalog version and input.
func WithCache(cache ports.ResultCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithExplainer(explainer ports.ExplainerPort) Option {
	return func(s *Service) {
		s.explainer = explainer
	}
}

func WithVisaStatus(visaAPI ports.VisaStatusPort) Option {
	return func(s *Service) {
		s.visaAPI = visaAPI
	}
}

func WithNotifier(notifier ports.NotifierPort) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEnrichmentTimeout bounds the whole enrichment phase.
func WithEnrichmentTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.enrichmentTimeout = d
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// NewService constructs a Service. The catalog is required.
func NewService(cat *catalog.Catalog, opts ...Option) (*Service, error) {
	if cat == nil {
		return nil, errors.New("trip service: catalog is required")
	}
	s := &Service{
		catalog:           cat,
		logger:            slog.Default(),
		tracer:            otel.Tracer("tripcheck/internal/trip"),
		enrichmentTimeout: defaultEnrichmentTimeout,
		cacheTTL:          defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ResolveTrip validates the input and returns the full trip result. The
// resolution timestamp comes from the request context clock.
func (s *Service) ResolveTrip(ctx context.Context, in TripInput) (*TripResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveResolveLatency(time.Since(start)) }()

	ctx, span := s.tracer.Start(ctx, "trip.ResolveTrip", trace.WithAttributes(
		attribute.String("trip.destination", in.Destination),
		attribute.String("trip.purpose", string(in.Purpose)),
	))
	defer span.End()

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}
	now := requestcontext.Now(ctx)
	key := CacheKey(s.catalog.Version(), in)

	result, hit := s.cached(ctx, key)
	if hit {
		result.ResolvedAt = now
	} else {
		result = Resolve(s.catalog, in, now)
		complete := true
		if s.explainer != nil || s.visaAPI != nil {
			var enrichment *Enrichment
			enrichment, complete = s.enrich(ctx, result)
			if !enrichment.IsEmpty() {
				result.Enrichment = enrichment
			}
		}
		if complete {
			s.store(ctx, key, result)
		}
	}

	outcome := "fallback"
	if result.Matched() {
		outcome = "matched"
		span.SetAttributes(attribute.String("trip.rule_id", result.MatchedRule.ID))
	}
	span.SetAttributes(
		attribute.String("trip.outcome", outcome),
		attribute.Bool("trip.cache_hit", hit),
	)
	s.metrics.IncrementResolution(outcome, string(in.Purpose))
	s.publishNotices(ctx, key, result, now)

	return result, nil
}

// Assess validates the input and returns the compact classification.
func (s *Service) Assess(ctx context.Context, in AssessmentInput) (*AssessmentResult, error) {
	ctx, span := s.tracer.Start(ctx, "trip.Assess", trace.WithAttributes(
		attribute.String("trip.destination", in.Destination),
		attribute.String("trip.purpose", string(in.Purpose)),
	))
	defer span.End()

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}
	result := Assess(s.catalog, s.links, in, requestcontext.Now(ctx))
	span.SetAttributes(attribute.String("trip.entry_type", string(result.EntryType)))
	s.metrics.IncrementAssessment(string(result.EntryType))
	return result, nil
}

// Countries lists covered destinations sorted by display name.
func (s *Service) Countries() []catalog.Country {
	return s.catalog.Countries()
}

// Policy returns the corporate travel policy.
func (s *Service) Policy() catalog.Policy {
	return s.catalog.Policy()
}

func (s *Service) CatalogVersion() string {
	return s.catalog.Version()
}

func (s *Service) cached(ctx context.Context, key string) (*TripResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrCacheMiss) {
			s.metrics.IncrementCacheLookup("miss")
		} else {
			s.metrics.IncrementCacheLookup("error")
			s.logger.WarnContext(ctx, "trip cache read failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, false
	}

	var result TripResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "discarding undecodable cached trip result",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, false
	}
	s.metrics.IncrementCacheLookup("hit")
	return &result, true
}

func (s *Service) store(ctx context.Context, key string, result *TripResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.WarnContext(ctx, "trip result not cacheable", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "trip cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (s *Service) publishNotices(ctx context.Context, key string, result *TripResult, now time.Time) {
	if s.notifier == nil {
		return
	}
	employee, ok := requestcontext.Employee(ctx)
	if !ok || employee.EmployeeID == "" {
		return
	}
	notices := Noteworthy(result, now)
	if len(notices) == 0 {
		return
	}

	out := make([]ports.Notice, len(notices))
	for i, n := range notices {
		out[i] = ports.Notice{
			ID:      key + ":" + string(n.Kind),
			Kind:    string(n.Kind),
			Title:   n.Title,
			Message: n.Message,
			DueAt:   n.DueAt,
		}
		s.metrics.IncrementNotice(string(n.Kind))
	}
	if err := s.notifier.Notify(ctx, employee.EmployeeID, out); err != nil {
		s.logger.WarnContext(ctx, "trip notices not delivered",
			"request_id", requestcontext.RequestID(ctx),
			"employee_id", employee.EmployeeID,
			"error", err,
		)
	}
}

// CacheKey identifies a resolution by catalog version and normalised input.
func CacheKey(catalogVersion string, in TripInput) string {
	h, _ := blake2b.New256(nil)
	for _, part := range []string{
		catalogVersion,
		in.Citizenship,
		in.Destination,
		string(in.Purpose),
		in.DepartureDate.Format(dateLayout),
		in.ReturnDate.Format(dateLayout),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	if in.NeedsInvitationLetter {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return "trip:" + hex.EncodeToString(h.Sum(nil))
}
