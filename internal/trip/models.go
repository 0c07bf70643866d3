package trip

import (
	"time"

	"tripcheck/internal/catalog"
	"tripcheck/internal/letter"
)

// TripInput is a validated trip request. Dates are calendar days in UTC.
type TripInput struct {
	Citizenship           string          `json:"citizenship"`
	Destination           string          `json:"destination"`
	Purpose               catalog.Purpose `json:"purpose"`
	DepartureDate         time.Time       `json:"departureDate"`
	ReturnDate            time.Time       `json:"returnDate"`
	NeedsInvitationLetter bool            `json:"needsInvitationLetter"`
}

// DurationDays counts both travel days, so a same-day trip lasts one day.
func (in TripInput) DurationDays() int {
	return int(in.ReturnDate.Sub(in.DepartureDate).Hours()/24) + 1
}

// TripResult is the full resolution for the structured trip flow.
type TripResult struct {
	Input          TripInput             `json:"input"`
	MatchedRule    *catalog.Rule         `json:"matchedRule"`
	Requirements   []catalog.Requirement `json:"requirements"`
	EntryType      catalog.EntryType     `json:"entryType"`
	LetterEligible bool                  `json:"letterEligible"`
	LetterTemplate letter.TemplateID     `json:"letterTemplate,omitempty"`
	DurationDays   int                   `json:"durationDays"`
	CatalogVersion string                `json:"catalogVersion"`
	ResolvedAt     time.Time             `json:"resolvedAt"`
	Enrichment     *Enrichment           `json:"enrichment,omitempty"`
}

// Matched reports whether a catalog rule drove the result.
func (r *TripResult) Matched() bool {
	return r.MatchedRule != nil
}

// Enrichment holds optional, best-effort additions. Fields stay empty when
// their source failed or timed out.
type Enrichment struct {
	Explanation string      `json:"explanation,omitempty"`
	LiveStatus  *LiveStatus `json:"liveStatus,omitempty"`
}

// IsEmpty reports whether no enrichment source contributed.
func (e *Enrichment) IsEmpty() bool {
	return e == nil || (e.Explanation == "" && e.LiveStatus == nil)
}

// LiveStatus is an external entry-requirement lookup for the same trip,
// compared against the catalog classification.
type LiveStatus struct {
	EntryType         catalog.EntryType `json:"entryType"`
	AllowedStayDays   int               `json:"allowedStayDays,omitempty"`
	Source            string            `json:"source"`
	CheckedAt         time.Time         `json:"checkedAt"`
	AgreesWithCatalog bool              `json:"agreesWithCatalog"`
}

// AssessmentInput is a validated quick-check request. A zero TravelDate
// means the date is not known yet.
type AssessmentInput struct {
	Citizenship       string
	Destination       string
	Purpose           catalog.Purpose
	TravelDate        time.Time
	DurationDays      int
	EmployerSponsored *bool
}

// AssessmentResult is the compact classification used by quick-check and
// map views.
type AssessmentResult struct {
	Citizenship     string
	Destination     string
	DestinationName string
	Purpose         catalog.Purpose
	EntryType       catalog.EntryType
	Required        bool
	Headline        string
	Details         string
	MaxStayDays     *int
	Fee             *catalog.Fee
	ProcessingTime  string
	ApplyBy         *time.Time
	Governance      *catalog.Governance
	Sources         []catalog.Source
	Actions         []catalog.Action
	Warnings        []string
	LetterAvailable bool
	LetterTemplate  letter.TemplateID
	RuleID          string
	CatalogVersion  string
	AssessedAt      time.Time
}

// Classification is the shared intermediate both entry points project from.
// A nil Rule means no catalog entry covers the trip and EntryType is UNKNOWN.
type Classification struct {
	Rule           *catalog.Rule
	EntryType      catalog.EntryType
	MaxStayDays    int
	ProcessingTime string
	Fee            *catalog.Fee
	Governance     *catalog.Governance
	Sources        []catalog.Source
	LetterTemplate letter.TemplateID
}

func (c Classification) Matched() bool {
	return c.Rule != nil
}

// Required is true only for entry types that need an authorization.
func (c Classification) Required() bool {
	return c.EntryType.RequiresAuthorization()
}

// NoticeKind identifies why a trip is worth pushing to the traveller.
type NoticeKind string

const (
	NoticeApplyNow           NoticeKind = "apply_now"
	NoticeLetterAvailable    NoticeKind = "letter_available"
	NoticeUnknownDestination NoticeKind = "unknown_destination"
)

// Notice is a noteworthy fact about a resolved trip.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
	DueAt   *time.Time
}
