package ports

import "context"

// ExplainerPort generates a plain-language summary of a resolved trip.
// Implementations may be slow or unavailable; callers treat failures as
// "no explanation".
type ExplainerPort interface {
	Explain(ctx context.Context, req ExplainRequest) (string, error)
}

// ExplainRequest is the explainer's view of a trip (port model).
type ExplainRequest struct {
	Citizenship     string
	Destination     string
	DestinationName string
	Purpose         string
	EntryType       string
	MaxStayDays     int
	DurationDays    int
	Requirements    []string
}
