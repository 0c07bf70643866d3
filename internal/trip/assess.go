package trip

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripcheck/internal/catalog"
)

var purposePhrases = map[catalog.Purpose]string{
	catalog.PurposeBusinessMeeting: "business meetings",
	catalog.PurposeConference:      "conferences",
	catalog.PurposeClientVisit:     "client visits",
	catalog.PurposeTraining:        "training",
	catalog.PurposeSiteVisit:       "site visits",
}

// Assess classifies a quick-check request and projects the compact result.
// An uncovered destination degrades to UNKNOWN and is never an error.
func Assess(cat *catalog.Catalog, links *catalog.VisaLinks, in AssessmentInput, now time.Time) *AssessmentResult {
	cls := Classify(cat, in.Destination, in.Purpose, in.Citizenship)
	name := DestinationName(cat, links, cls.Rule, in.Destination)

	res := &AssessmentResult{
		Citizenship:     in.Citizenship,
		Destination:     in.Destination,
		DestinationName: name,
		Purpose:         in.Purpose,
		EntryType:       cls.EntryType,
		Required:        cls.Required(),
		CatalogVersion:  cat.Version(),
		AssessedAt:      now,
	}
	res.Headline, res.Details = describe(cls, in, name)

	if cls.Matched() {
		maxStay := cls.MaxStayDays
		res.MaxStayDays = &maxStay
		res.Fee = cls.Fee
		res.ProcessingTime = cls.ProcessingTime
		res.Governance = cls.Governance
		res.Sources = cls.Sources
		res.RuleID = cls.Rule.ID
		res.LetterTemplate = cls.LetterTemplate
		res.LetterAvailable = cls.LetterTemplate != "" && (in.EmployerSponsored == nil || *in.EmployerSponsored)
	}
	res.Actions = applicationActions(cls, links, in.Destination, name)

	if res.Required && !in.TravelDate.IsZero() {
		if days, ok := ProcessingDays(cls.ProcessingTime); ok {
			applyBy := in.TravelDate.AddDate(0, 0, -days)
			res.ApplyBy = &applyBy
		}
	}
	res.Warnings = assessmentWarnings(cls, in, res.ApplyBy, now)
	return res
}

// DestinationName resolves a display name: matched rule, any catalog rule for
// the country, the visa-link table, the CLDR English name, then the code.
func DestinationName(cat *catalog.Catalog, links *catalog.VisaLinks, rule *catalog.Rule, code string) string {
	if rule != nil && rule.CountryName != "" {
		return rule.CountryName
	}
	if name, ok := cat.CountryName(code); ok && name != "" {
		return name
	}
	if link, ok := links.Lookup(code); ok && link.Name != "" {
		return link.Name
	}
	if name := catalog.DisplayName(code); name != "" {
		return name
	}
	return code
}

func describe(cls Classification, in AssessmentInput, name string) (headline, details string) {
	activity := purposePhrases[in.Purpose]
	citizens := catalog.DisplayName(in.Citizenship)
	if citizens == "" {
		citizens = in.Citizenship
	}

	switch cls.EntryType {
	case catalog.EntryNone:
		headline = "No visa required for " + name
		details = fmt.Sprintf("%s citizens can travel to %s for %s without prior authorization", citizens, name, activity)
		if cls.MaxStayDays > 0 {
			details += fmt.Sprintf(" for up to %d days", cls.MaxStayDays)
		}
		details += "."
	case catalog.EntryETA:
		headline = "Electronic travel authorization required for " + name
		details = fmt.Sprintf("%s citizens must obtain an electronic travel authorization before travelling to %s for %s.", citizens, name, activity)
	case catalog.EntryEVisa:
		headline = "eVisa required for " + name
		details = fmt.Sprintf("%s citizens must apply online for an eVisa before travelling to %s for %s.", citizens, name, activity)
	case catalog.EntryVisa:
		headline = "Visa required for " + name
		details = fmt.Sprintf("%s citizens need a visa issued by a consulate or embassy before travelling to %s for %s.", citizens, name, activity)
	default:
		headline = "Entry requirements unknown for " + name
		details = fmt.Sprintf("%s is not covered by the travel catalog for this trip. Check official government sources before booking and do not assume the trip is visa-free.", name)
		return headline, details
	}

	if cls.Required() && cls.ProcessingTime != "" {
		details += " Typical processing time: " + cls.ProcessingTime + "."
	}
	return headline, details
}

// applicationActions orders portal links so the one matching the entry type
// comes first, then ETA, eVisa and generic visa links, then any links the
// rule's entry requirements carry. URLs are never repeated.
func applicationActions(cls Classification, links *catalog.VisaLinks, code, name string) []catalog.Action {
	var actions []catalog.Action
	seen := make(map[string]bool)
	add := func(label, url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		actions = append(actions, catalog.Action{Label: label, URL: url})
	}

	if link, ok := links.Lookup(code); ok {
		eta := catalog.Action{Label: "Apply for the " + name + " ETA", URL: link.ETAURL}
		evisa := catalog.Action{Label: "Apply for the " + name + " eVisa", URL: link.EVisaURL}
		visa := catalog.Action{Label: name + " visa information", URL: link.VisaURL}

		switch cls.EntryType {
		case catalog.EntryETA:
			add(eta.Label, eta.URL)
		case catalog.EntryEVisa:
			add(evisa.Label, evisa.URL)
		case catalog.EntryVisa:
			add(visa.Label, visa.URL)
		}
		for _, a := range []catalog.Action{eta, evisa, visa} {
			add(a.Label, a.URL)
		}
	}

	if cls.Rule != nil {
		for _, req := range cls.Rule.Requirements {
			if req.Type != catalog.RequirementEntry {
				continue
			}
			for _, a := range req.Actions {
				add(a.Label, a.URL)
			}
		}
	}
	return actions
}

func assessmentWarnings(cls Classification, in AssessmentInput, applyBy *time.Time, now time.Time) []string {
	var warnings []string
	if cls.Matched() && cls.MaxStayDays > 0 && in.DurationDays > cls.MaxStayDays {
		warnings = append(warnings, fmt.Sprintf("Planned stay of %d days exceeds the %d-day maximum for this entry type.", in.DurationDays, cls.MaxStayDays))
	}
	today := truncateDay(now)
	if !in.TravelDate.IsZero() && in.TravelDate.Before(today) {
		warnings = append(warnings, "Travel date is in the past.")
	} else if applyBy != nil && applyBy.Before(today) {
		warnings = append(warnings, fmt.Sprintf("Processing usually takes %s and the travel date is already inside that window. Apply immediately or move the trip.", cls.ProcessingTime))
	}
	return warnings
}

var processingPattern = regexp.MustCompile(`(?i)(\d+)(?:\s*(?:-|–|to)\s*(\d+))?\s*(business\s+days?|working\s+days?|days?|weeks?|months?)`)

// ProcessingDays extracts the upper bound, in calendar days, from free-text
// processing times such as "2-8 weeks" or "up to 3 business days". Business
// days are scaled by 7/5 and rounded up.
func ProcessingDays(text string) (int, bool) {
	m := processingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	upper := m[1]
	if m[2] != "" {
		upper = m[2]
	}
	n, err := strconv.Atoi(upper)
	if err != nil {
		return 0, false
	}

	unit := strings.ToLower(m[3])
	switch {
	case strings.HasPrefix(unit, "business"), strings.HasPrefix(unit, "working"):
		return int(math.Ceil(float64(n) * 7 / 5)), true
	case strings.HasPrefix(unit, "week"):
		return n * 7, true
	case strings.HasPrefix(unit, "month"):
		return n * 30, true
	default:
		return n, true
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
