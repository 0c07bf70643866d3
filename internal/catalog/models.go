package catalog

import (
	"github.com/shopspring/decimal"
)

// Purpose is a canonical trip-purpose tag.
type Purpose string

const (
	PurposeBusinessMeeting Purpose = "business_meeting"
	PurposeConference      Purpose = "conference"
	PurposeClientVisit     Purpose = "client_visit"
	PurposeTraining        Purpose = "training"
	PurposeSiteVisit       Purpose = "site_visit"
)

var validPurposes = map[Purpose]bool{
	PurposeBusinessMeeting: true,
	PurposeConference:      true,
	PurposeClientVisit:     true,
	PurposeTraining:        true,
	PurposeSiteVisit:       true,
}

// Purposes lists the canonical tags in display order.
func Purposes() []Purpose {
	return []Purpose{PurposeBusinessMeeting, PurposeConference, PurposeClientVisit, PurposeTraining, PurposeSiteVisit}
}

func (p Purpose) IsValid() bool {
	return validPurposes[p]
}

func (p Purpose) String() string {
	return string(p)
}

// RequirementType groups requirements for display.
type RequirementType string

const (
	RequirementEntry    RequirementType = "entry"
	RequirementDocument RequirementType = "document"
	RequirementHealth   RequirementType = "health"
	RequirementCustoms  RequirementType = "customs"
	RequirementStay     RequirementType = "stay"
	RequirementPolicy   RequirementType = "policy"
)

var validRequirementTypes = map[RequirementType]bool{
	RequirementEntry:    true,
	RequirementDocument: true,
	RequirementHealth:   true,
	RequirementCustoms:  true,
	RequirementStay:     true,
	RequirementPolicy:   true,
}

func (t RequirementType) IsValid() bool {
	return validRequirementTypes[t]
}

// Severity ranks how strongly a requirement applies.
type Severity string

const (
	SeverityRequired    Severity = "required"
	SeverityRecommended Severity = "recommended"
	SeverityOptional    Severity = "optional"
)

var validSeverities = map[Severity]bool{
	SeverityRequired:    true,
	SeverityRecommended: true,
	SeverityOptional:    true,
}

func (s Severity) IsValid() bool {
	return validSeverities[s]
}

// EntryType is the entry-authorization category.
type EntryType string

const (
	EntryNone    EntryType = "NONE"
	EntryETA     EntryType = "ETA"
	EntryEVisa   EntryType = "EVISA"
	EntryVisa    EntryType = "VISA"
	EntryUnknown EntryType = "UNKNOWN"
)

var validEntryTypes = map[EntryType]bool{
	EntryNone:    true,
	EntryETA:     true,
	EntryEVisa:   true,
	EntryVisa:    true,
	EntryUnknown: true,
}

func (e EntryType) IsValid() bool {
	return validEntryTypes[e]
}

// RequiresAuthorization reports whether travellers must obtain something
// before departure. NONE and UNKNOWN never do.
func (e EntryType) RequiresAuthorization() bool {
	return e == EntryVisa || e == EntryEVisa || e == EntryETA
}

// Document is the raw catalog document.
type Document struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Policy      Policy `json:"policy"`
	Rules       []Rule `json:"rules"`
}

// Policy is the corporate travel policy singleton.
type Policy struct {
	BookingGuidance  string `json:"bookingGuidance"`
	ApprovalWorkflow string `json:"approvalWorkflow"`
	ExpensePolicy    string `json:"expensePolicy"`
	InsurancePolicy  string `json:"insurancePolicy"`
}

// Rule scopes requirements to a destination, purposes and optionally a set of
// citizenships. An empty Citizenships list is a wildcard.
type Rule struct {
	ID           string        `json:"id"`
	CountryCode  string        `json:"countryCode"`
	CountryName  string        `json:"countryName"`
	Purposes     []Purpose     `json:"purposes"`
	Citizenships []string      `json:"citizenships,omitempty"`
	Requirements []Requirement `json:"requirements"`
	Output       RuleOutput    `json:"output"`
	LastUpdated  string        `json:"lastUpdated,omitempty"`
}

// IsWildcard reports whether the rule applies to every citizenship.
func (r Rule) IsWildcard() bool {
	return len(r.Citizenships) == 0
}

// AppliesTo reports whether the rule covers citizenship.
func (r Rule) AppliesTo(citizenship string) bool {
	if r.IsWildcard() {
		return true
	}
	for _, c := range r.Citizenships {
		if c == citizenship {
			return true
		}
	}
	return false
}

// HasPurpose reports whether the rule lists p.
func (r Rule) HasPurpose(p Purpose) bool {
	for _, rp := range r.Purposes {
		if rp == p {
			return true
		}
	}
	return false
}

// Requirement is one actionable line item.
type Requirement struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        RequirementType `json:"type"`
	Severity    Severity        `json:"severity"`
	Details     []string        `json:"details,omitempty"`
	Fee         *Fee            `json:"fee,omitempty"`
	Actions     []Action        `json:"actions,omitempty"`
}

// RuleOutput is the denormalised summary attached to a rule.
type RuleOutput struct {
	EntryType      EntryType   `json:"entryType"`
	MaxStayDays    int         `json:"maxStayDays"`
	ProcessingTime string      `json:"processingTime,omitempty"`
	Documents      []string    `json:"documents,omitempty"`
	Notes          []string    `json:"notes,omitempty"`
	LetterTemplate string      `json:"letterTemplate,omitempty"`
	Fee            *Fee        `json:"fee,omitempty"`
	Governance     *Governance `json:"governance,omitempty"`
	Sources        []Source    `json:"sources,omitempty"`
}

// Fee is a government or service charge.
type Fee struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Reimbursable bool            `json:"reimbursable"`
}

// Governance is review bookkeeping for a rule.
type Governance struct {
	Status      string `json:"status"`
	Owner       string `json:"owner"`
	ReviewDueAt string `json:"reviewDueAt,omitempty"`
}

// Source cites where a rule's content comes from.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Action is a labelled link.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Country is an entry in the derived country list.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
