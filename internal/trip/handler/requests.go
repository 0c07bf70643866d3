package handler

import (
	"tripcheck/internal/trip"
	dErrors "tripcheck/pkg/domain-errors"
)

const maxFieldLength = 32

// ResolveTripRequest is the HTTP request body for POST /trips/resolve.
type ResolveTripRequest struct {
	Citizenship           string `json:"citizenship"`
	Destination           string `json:"destination"`
	Purpose               string `json:"purpose"`
	DepartureDate         string `json:"departureDate"`
	ReturnDate            string `json:"returnDate"`
	NeedsInvitationLetter bool   `json:"needsInvitationLetter"`

	// Parsed values (populated by Validate)
	parsed trip.TripInput
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ResolveTripRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	for field, v := range map[string]string{
		"citizenship":   r.Citizenship,
		"destination":   r.Destination,
		"purpose":       r.Purpose,
		"departureDate": r.DepartureDate,
		"returnDate":    r.ReturnDate,
	} {
		if len(v) > maxFieldLength {
			return dErrors.NewField(dErrors.CodeValidation, field, field+" is too long")
		}
	}

	parsed, err := trip.ParseTripRequest(trip.TripRequest{
		Citizenship:           r.Citizenship,
		Destination:           r.Destination,
		Purpose:               r.Purpose,
		DepartureDate:         r.DepartureDate,
		ReturnDate:            r.ReturnDate,
		NeedsInvitationLetter: r.NeedsInvitationLetter,
	})
	if err != nil {
		return err
	}
	r.parsed = parsed
	return nil
}

// ParsedInput returns the validated trip input.
func (r *ResolveTripRequest) ParsedInput() trip.TripInput {
	return r.parsed
}

// AssessRequest is the HTTP request body for POST /assessments.
type AssessRequest struct {
	Citizenship       string `json:"citizenship"`
	Destination       string `json:"destination"`
	Purpose           string `json:"purpose"`
	TravelDate        string `json:"travelDate,omitempty"`
	DurationDays      int    `json:"durationDays,omitempty"`
	EmployerSponsored *bool  `json:"employerSponsored,omitempty"`

	parsed trip.AssessmentInput
}

func (r *AssessRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	for field, v := range map[string]string{
		"citizenship": r.Citizenship,
		"destination": r.Destination,
		"purpose":     r.Purpose,
		"travelDate":  r.TravelDate,
	} {
		if len(v) > maxFieldLength {
			return dErrors.NewField(dErrors.CodeValidation, field, field+" is too long")
		}
	}

	parsed, err := trip.ParseAssessmentRequest(trip.AssessmentRequest{
		Citizenship:       r.Citizenship,
		Destination:       r.Destination,
		Purpose:           r.Purpose,
		TravelDate:        r.TravelDate,
		DurationDays:      r.DurationDays,
		EmployerSponsored: r.EmployerSponsored,
	})
	if err != nil {
		return err
	}
	r.parsed = parsed
	return nil
}

// ParsedInput returns the validated assessment input.
func (r *AssessRequest) ParsedInput() trip.AssessmentInput {
	return r.parsed
}
