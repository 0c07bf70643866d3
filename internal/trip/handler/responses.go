package handler

import (
	"time"

	"tripcheck/internal/catalog"
	"tripcheck/internal/trip"
)

const dateLayout = "2006-01-02"

// TripResultResponse is the HTTP response for POST /trips/resolve.
type TripResultResponse struct {
	Input          TripInputResponse     `json:"input"`
	MatchedRule    *RuleResponse         `json:"matchedRule"`
	Requirements   []catalog.Requirement `json:"requirements"`
	EntryType      string                `json:"entryType"`
	LetterEligible bool                  `json:"letterEligible"`
	LetterTemplate *string               `json:"letterTemplate"`
	DurationDays   int                   `json:"durationDays"`
	CatalogVersion string                `json:"catalogVersion"`
	ResolvedAt     time.Time             `json:"resolvedAt"`
	Enrichment     *EnrichmentResponse   `json:"enrichment,omitempty"`
}

// TripInputResponse echoes the validated input.
type TripInputResponse struct {
	Citizenship           string `json:"citizenship"`
	Destination           string `json:"destination"`
	Purpose               string `json:"purpose"`
	DepartureDate         string `json:"departureDate"`
	ReturnDate            string `json:"returnDate"`
	NeedsInvitationLetter bool   `json:"needsInvitationLetter"`
}

// RuleResponse is the matched rule without its requirement list, which is
// returned separately in composed form.
type RuleResponse struct {
	ID           string             `json:"id"`
	CountryCode  string             `json:"countryCode"`
	CountryName  string             `json:"countryName"`
	Purposes     []catalog.Purpose  `json:"purposes"`
	Citizenships []string           `json:"citizenships,omitempty"`
	Output       catalog.RuleOutput `json:"output"`
	LastUpdated  string             `json:"lastUpdated,omitempty"`
}

type EnrichmentResponse struct {
	Explanation string           `json:"explanation,omitempty"`
	LiveStatus  *trip.LiveStatus `json:"liveStatus,omitempty"`
}

// FromTripResult converts a domain TripResult to an HTTP response.
func FromTripResult(result *trip.TripResult) *TripResultResponse {
	in := result.Input
	resp := &TripResultResponse{
		Input: TripInputResponse{
			Citizenship:           in.Citizenship,
			Destination:           in.Destination,
			Purpose:               string(in.Purpose),
			DepartureDate:         in.DepartureDate.Format(dateLayout),
			ReturnDate:            in.ReturnDate.Format(dateLayout),
			NeedsInvitationLetter: in.NeedsInvitationLetter,
		},
		Requirements:   result.Requirements,
		EntryType:      string(result.EntryType),
		LetterEligible: result.LetterEligible,
		DurationDays:   result.DurationDays,
		CatalogVersion: result.CatalogVersion,
		ResolvedAt:     result.ResolvedAt,
	}
	if r := result.MatchedRule; r != nil {
		resp.MatchedRule = &RuleResponse{
			ID:           r.ID,
			CountryCode:  r.CountryCode,
			CountryName:  r.CountryName,
			Purposes:     r.Purposes,
			Citizenships: r.Citizenships,
			Output:       r.Output,
			LastUpdated:  r.LastUpdated,
		}
	}
	if result.LetterTemplate != "" {
		tmpl := string(result.LetterTemplate)
		resp.LetterTemplate = &tmpl
	}
	if !result.Enrichment.IsEmpty() {
		resp.Enrichment = &EnrichmentResponse{
			Explanation: result.Enrichment.Explanation,
			LiveStatus:  result.Enrichment.LiveStatus,
		}
	}
	return resp
}

// AssessmentResponse is the HTTP response for POST /assessments.
type AssessmentResponse struct {
	Citizenship     string              `json:"citizenship"`
	Destination     string              `json:"destination"`
	DestinationName string              `json:"destinationName"`
	Purpose         string              `json:"purpose"`
	EntryType       string              `json:"entryType"`
	Required        bool                `json:"required"`
	Headline        string              `json:"headline"`
	Details         string              `json:"details"`
	MaxStayDays     *int                `json:"maxStayDays"`
	Fee             *catalog.Fee        `json:"fee"`
	ProcessingTime  *string             `json:"processingTime"`
	ApplyBy         *string             `json:"applyBy,omitempty"`
	Governance      *catalog.Governance `json:"governance"`
	Sources         []catalog.Source    `json:"sources"`
	Actions         []catalog.Action    `json:"actions"`
	Warnings        []string            `json:"warnings"`
	LetterAvailable bool                `json:"letterAvailable"`
	LetterTemplate  *string             `json:"letterTemplate"`
	RuleID          *string             `json:"ruleId"`
	CatalogVersion  string              `json:"catalogVersion"`
	AssessedAt      time.Time           `json:"assessedAt"`
}

// FromAssessment converts a domain AssessmentResult to an HTTP response.
// Empty lists are rendered as [] rather than null.
func FromAssessment(result *trip.AssessmentResult) *AssessmentResponse {
	resp := &AssessmentResponse{
		Citizenship:     result.Citizenship,
		Destination:     result.Destination,
		DestinationName: result.DestinationName,
		Purpose:         string(result.Purpose),
		EntryType:       string(result.EntryType),
		Required:        result.Required,
		Headline:        result.Headline,
		Details:         result.Details,
		MaxStayDays:     result.MaxStayDays,
		Fee:             result.Fee,
		ProcessingTime:  optional(result.ProcessingTime),
		Governance:      result.Governance,
		Sources:         orEmpty(result.Sources),
		Actions:         orEmpty(result.Actions),
		Warnings:        orEmpty(result.Warnings),
		LetterAvailable: result.LetterAvailable,
		LetterTemplate:  optional(string(result.LetterTemplate)),
		RuleID:          optional(result.RuleID),
		CatalogVersion:  result.CatalogVersion,
		AssessedAt:      result.AssessedAt,
	}
	if result.ApplyBy != nil {
		resp.ApplyBy = optional(result.ApplyBy.Format(dateLayout))
	}
	return resp
}

// CountriesResponse is the HTTP response for GET /countries.
type CountriesResponse struct {
	Countries      []catalog.Country `json:"countries"`
	CatalogVersion string            `json:"catalogVersion"`
}

// PolicyResponse is the HTTP response for GET /policy.
type PolicyResponse struct {
	BookingGuidance  string `json:"bookingGuidance"`
	ApprovalWorkflow string `json:"approvalWorkflow"`
	ExpensePolicy    string `json:"expensePolicy"`
	InsurancePolicy  string `json:"insurancePolicy"`
}

func FromPolicy(p catalog.Policy) *PolicyResponse {
	return &PolicyResponse{
		BookingGuidance:  p.BookingGuidance,
		ApprovalWorkflow: p.ApprovalWorkflow,
		ExpensePolicy:    p.ExpensePolicy,
		InsurancePolicy:  p.InsurancePolicy,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
