package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tripcheck/internal/catalog"
	"tripcheck/internal/trip"
	"tripcheck/pkg/platform/httputil"
	"tripcheck/pkg/requestcontext"
)

// Service defines the interface for trip operations.
type Service interface {
	ResolveTrip(ctx context.Context, in trip.TripInput) (*trip.TripResult, error)
	Assess(ctx context.Context, in trip.AssessmentInput) (*trip.AssessmentResult, error)
	Countries() []catalog.Country
	Policy() catalog.Policy
	CatalogVersion() string
}

// Handler wires trip endpoints to the trip service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a trip handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts trip endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/trips/resolve", h.HandleResolveTrip)
	r.Post("/assessments", h.HandleAssess)
	r.Get("/countries", h.HandleCountries)
	r.Get("/policy", h.HandlePolicy)
}

// HandleResolveTrip handles POST /trips/resolve requests.
func (h *Handler) HandleResolveTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ResolveTripRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ResolveTrip(ctx, req.ParsedInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "trip resolution failed",
			"request_id", requestID,
			"destination", req.ParsedInput().Destination,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	ruleID := ""
	if result.MatchedRule != nil {
		ruleID = result.MatchedRule.ID
	}
	h.logger.InfoContext(ctx, "trip resolved",
		"request_id", requestID,
		"destination", result.Input.Destination,
		"purpose", result.Input.Purpose,
		"rule_id", ruleID,
		"entry_type", result.EntryType,
		"letter_eligible", result.LetterEligible,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromTripResult(result))
}

// HandleAssess handles POST /assessments requests.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AssessRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Assess(ctx, req.ParsedInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "trip assessed",
		"request_id", requestID,
		"destination", result.Destination,
		"entry_type", result.EntryType,
		"required", result.Required,
	)
	httputil.WriteJSON(w, http.StatusOK, FromAssessment(result))
}

// HandleCountries handles GET /countries requests.
func (h *Handler) HandleCountries(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, &CountriesResponse{
		Countries:      orEmpty(h.service.Countries()),
		CatalogVersion: h.service.CatalogVersion(),
	})
}

// HandlePolicy handles GET /policy requests.
func (h *Handler) HandlePolicy(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromPolicy(h.service.Policy()))
}
