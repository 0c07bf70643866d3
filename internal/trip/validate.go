package trip

import (
	"strings"
	"time"

	"tripcheck/internal/catalog"
	dErrors "tripcheck/pkg/domain-errors"
)

const (
	dateLayout = "2006-01-02"

	// maxTripDays bounds durations to something a business trip can be.
	maxTripDays = 366
)

// TripRequest is the unvalidated, string-typed form of a trip request.
type TripRequest struct {
	Citizenship           string
	Destination           string
	Purpose               string
	DepartureDate         string
	ReturnDate            string
	NeedsInvitationLetter bool
}

// ParseTripRequest normalises and validates a raw trip request.
func ParseTripRequest(req TripRequest) (TripInput, error) {
	citizenship, err := parseCitizenship(req.Citizenship)
	if err != nil {
		return TripInput{}, err
	}
	destination, err := parseDestination(req.Destination)
	if err != nil {
		return TripInput{}, err
	}
	purpose, err := ParsePurpose(req.Purpose)
	if err != nil {
		return TripInput{}, err
	}
	departure, err := parseDate("departureDate", req.DepartureDate)
	if err != nil {
		return TripInput{}, err
	}
	ret, err := parseDate("returnDate", req.ReturnDate)
	if err != nil {
		return TripInput{}, err
	}

	in := TripInput{
		Citizenship:           citizenship,
		Destination:           destination,
		Purpose:               purpose,
		DepartureDate:         departure,
		ReturnDate:            ret,
		NeedsInvitationLetter: req.NeedsInvitationLetter,
	}
	if err := in.Validate(); err != nil {
		return TripInput{}, err
	}
	return in, nil
}

// Validate checks the invariants of an already-typed input.
func (in TripInput) Validate() error {
	if !catalog.IsCountryCode(in.Citizenship) {
		return dErrors.NewField(dErrors.CodeValidation, "citizenship", "citizenship must be an ISO 3166-1 alpha-2 country code")
	}
	if !catalog.IsRegionShaped(in.Destination) || in.Destination != strings.ToUpper(in.Destination) {
		return dErrors.NewField(dErrors.CodeValidation, "destination", "destination must be a two-letter country code")
	}
	if !in.Purpose.IsValid() {
		return dErrors.NewField(dErrors.CodeValidation, "purpose", "unknown purpose "+quote(string(in.Purpose)))
	}
	if in.DepartureDate.IsZero() {
		return dErrors.NewField(dErrors.CodeValidation, "departureDate", "departureDate is required")
	}
	if in.ReturnDate.IsZero() {
		return dErrors.NewField(dErrors.CodeValidation, "returnDate", "returnDate is required")
	}
	if in.ReturnDate.Before(in.DepartureDate) {
		return dErrors.NewField(dErrors.CodeValidation, "returnDate", "returnDate must not be before departureDate")
	}
	if in.DurationDays() > maxTripDays {
		return dErrors.NewField(dErrors.CodeValidation, "returnDate", "trip must not exceed 366 days")
	}
	return nil
}

// AssessmentRequest is the unvalidated form of a quick-check request.
type AssessmentRequest struct {
	Citizenship       string
	Destination       string
	Purpose           string
	TravelDate        string
	DurationDays      int
	EmployerSponsored *bool
}

// ParseAssessmentRequest normalises and validates a raw assessment request.
// Missing or unparseable fields fail; an uncovered destination does not.
func ParseAssessmentRequest(req AssessmentRequest) (AssessmentInput, error) {
	citizenship, err := parseCitizenship(req.Citizenship)
	if err != nil {
		return AssessmentInput{}, err
	}
	destination, err := parseDestination(req.Destination)
	if err != nil {
		return AssessmentInput{}, err
	}
	purpose, err := ParseAssessmentPurpose(req.Purpose)
	if err != nil {
		return AssessmentInput{}, err
	}

	in := AssessmentInput{
		Citizenship:       citizenship,
		Destination:       destination,
		Purpose:           purpose,
		DurationDays:      req.DurationDays,
		EmployerSponsored: req.EmployerSponsored,
	}
	if strings.TrimSpace(req.TravelDate) != "" {
		in.TravelDate, err = parseDate("travelDate", req.TravelDate)
		if err != nil {
			return AssessmentInput{}, err
		}
	}
	if err := in.Validate(); err != nil {
		return AssessmentInput{}, err
	}
	return in, nil
}

// Validate checks the invariants of an already-typed assessment input.
func (in AssessmentInput) Validate() error {
	if !catalog.IsCountryCode(in.Citizenship) {
		return dErrors.NewField(dErrors.CodeValidation, "citizenship", "citizenship must be an ISO 3166-1 alpha-2 country code")
	}
	if !catalog.IsRegionShaped(in.Destination) || in.Destination != strings.ToUpper(in.Destination) {
		return dErrors.NewField(dErrors.CodeValidation, "destination", "destination must be a two-letter country code")
	}
	if !in.Purpose.IsValid() {
		return dErrors.NewField(dErrors.CodeValidation, "purpose", "unknown purpose "+quote(string(in.Purpose)))
	}
	if in.DurationDays < 0 || in.DurationDays > maxTripDays {
		return dErrors.NewField(dErrors.CodeValidation, "durationDays", "durationDays must be between 0 and 366")
	}
	return nil
}

func parseCitizenship(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", dErrors.NewField(dErrors.CodeValidation, "citizenship", "citizenship is required")
	}
	if !catalog.IsCountryCode(code) {
		return "", dErrors.NewField(dErrors.CodeValidation, "citizenship", "unknown citizenship "+quote(raw))
	}
	return code, nil
}

func parseDestination(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", dErrors.NewField(dErrors.CodeValidation, "destination", "destination is required")
	}
	if !catalog.IsRegionShaped(code) {
		return "", dErrors.NewField(dErrors.CodeValidation, "destination", "destination must be a two-letter country code")
	}
	return code, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, dErrors.NewField(dErrors.CodeValidation, field, field+" is required")
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, dErrors.NewField(dErrors.CodeValidation, field, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}
