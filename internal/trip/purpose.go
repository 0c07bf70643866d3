package trip

import (
	"strings"

	"tripcheck/internal/catalog"
	dErrors "tripcheck/pkg/domain-errors"
)

// purposeAliases maps the short tags accepted by quick-check flows onto
// canonical purposes.
var purposeAliases = map[string]catalog.Purpose{
	"BUSINESS":   catalog.PurposeBusinessMeeting,
	"MEETING":    catalog.PurposeBusinessMeeting,
	"CONFERENCE": catalog.PurposeConference,
	"EVENT":      catalog.PurposeConference,
	"CLIENT":     catalog.PurposeClientVisit,
	"SALES":      catalog.PurposeClientVisit,
	"TRAINING":   catalog.PurposeTraining,
	"SITE":       catalog.PurposeSiteVisit,
	"SITE_VISIT": catalog.PurposeSiteVisit,
}

// ParsePurpose accepts only canonical purpose tags, case-insensitively.
func ParsePurpose(raw string) (catalog.Purpose, error) {
	p := catalog.Purpose(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return "", dErrors.NewField(dErrors.CodeValidation, "purpose", "purpose is required")
	}
	if !p.IsValid() {
		return "", dErrors.NewField(dErrors.CodeValidation, "purpose", "unknown purpose "+quote(raw))
	}
	return p, nil
}

// ParseAssessmentPurpose accepts canonical tags plus the short aliases
// (BUSINESS, EVENT, SALES, ...).
func ParseAssessmentPurpose(raw string) (catalog.Purpose, error) {
	trimmed := strings.TrimSpace(raw)
	if alias, ok := purposeAliases[strings.ToUpper(trimmed)]; ok {
		return alias, nil
	}
	return ParsePurpose(trimmed)
}

func quote(s string) string {
	return `"` + s + `"`
}
