package trip

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tripcheck/internal/catalog"
	"tripcheck/internal/trip/ports"
	"tripcheck/pkg/requestcontext"
)

const (
	sourceExplainer = "explainer"
	sourceVisaAPI   = "visa_api"
)

// enrich runs the optional enrichment sources in parallel under one timeout.
// Every source is optional: failures are logged and leave their field empty.
// complete is false when any configured source failed, so the caller does
// not cache a degraded result.
func (s *Service) enrich(ctx context.Context, result *TripResult) (enrichment *Enrichment, complete bool) {
	ctx, cancel := context.WithTimeout(ctx, s.enrichmentTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "trip.enrich")
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	enrichment = &Enrichment{}

	var mu sync.Mutex
	failed := false
	markFailed := func() {
		mu.Lock()
		failed = true
		mu.Unlock()
	}

	if s.explainer != nil {
		req := explainRequest(result, s.destinationName(result))
		g.Go(func() error {
			start := time.Now()
			text, err := s.explainer.Explain(ctx, req)
			s.metrics.ObserveEnrichmentLatency(sourceExplainer, time.Since(start))
			if err != nil {
				s.enrichmentFailed(ctx, sourceExplainer, err)
				markFailed()
				return nil
			}
			enrichment.Explanation = text
			return nil
		})
	}

	if s.visaAPI != nil {
		in := result.Input
		g.Go(func() error {
			start := time.Now()
			status, err := s.visaAPI.Status(ctx, in.Citizenship, in.Destination)
			s.metrics.ObserveEnrichmentLatency(sourceVisaAPI, time.Since(start))
			if err != nil {
				s.enrichmentFailed(ctx, sourceVisaAPI, err)
				markFailed()
				return nil
			}
			enrichment.LiveStatus = toLiveStatus(status, result.EntryType)
			return nil
		})
	}

	// Sources never return errors, so Wait only synchronises.
	_ = g.Wait()
	return enrichment, !failed
}

func (s *Service) enrichmentFailed(ctx context.Context, source string, err error) {
	s.metrics.IncrementEnrichmentFailure(source)
	s.logger.WarnContext(ctx, "trip enrichment failed",
		"request_id", requestcontext.RequestID(ctx),
		"source", source,
		"error", err,
	)
}

func (s *Service) destinationName(result *TripResult) string {
	return DestinationName(s.catalog, s.links, result.MatchedRule, result.Input.Destination)
}

func explainRequest(result *TripResult, destinationName string) ports.ExplainRequest {
	titles := make([]string, len(result.Requirements))
	for i, r := range result.Requirements {
		titles[i] = r.Title
	}
	req := ports.ExplainRequest{
		Citizenship:     result.Input.Citizenship,
		Destination:     result.Input.Destination,
		DestinationName: destinationName,
		Purpose:         string(result.Input.Purpose),
		EntryType:       string(result.EntryType),
		DurationDays:    result.DurationDays,
		Requirements:    titles,
	}
	if result.MatchedRule != nil {
		req.MaxStayDays = result.MatchedRule.Output.MaxStayDays
	}
	return req
}

func toLiveStatus(status *ports.VisaStatus, catalogEntry catalog.EntryType) *LiveStatus {
	if status == nil {
		return nil
	}
	entry := catalog.EntryType(status.EntryType)
	if !entry.IsValid() {
		entry = catalog.EntryUnknown
	}
	return &LiveStatus{
		EntryType:         entry,
		AllowedStayDays:   status.AllowedStayDays,
		Source:            status.Source,
		CheckedAt:         status.CheckedAt,
		AgreesWithCatalog: entry == catalogEntry,
	}
}
