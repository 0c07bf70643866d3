package ports

import (
	"context"
	"time"
)

// VisaStatusPort looks up entry requirements from an external provider.
// The catalog remains the source of truth; this is a cross-check only.
type VisaStatusPort interface {
	Status(ctx context.Context, citizenship, destination string) (*VisaStatus, error)
}

// VisaStatus is an external provider's answer (port model). EntryType uses
// the catalog vocabulary: NONE, ETA, EVISA, VISA or UNKNOWN.
type VisaStatus struct {
	Citizenship     string
	Destination     string
	EntryType       string
	AllowedStayDays int
	Source          string
	CheckedAt       time.Time
}
