package trip

import (
	"fmt"
	"time"

	"tripcheck/internal/catalog"
)

// applyWindowLead is how long before the apply-by date a required
// authorization becomes worth a push.
const applyWindowLead = 7 * 24 * time.Hour

// Noteworthy decides which facts about a resolved trip deserve a push
// notification. Trips that already ended produce nothing.
func Noteworthy(result *TripResult, now time.Time) []Notice {
	if result == nil || truncateDay(now).After(result.Input.ReturnDate) {
		return nil
	}

	if !result.Matched() {
		return []Notice{{
			Kind:    NoticeUnknownDestination,
			Title:   "Check entry rules for " + result.Input.Destination,
			Message: "This destination is not covered by the travel catalog. Confirm entry requirements with official sources before booking.",
		}}
	}

	var notices []Notice
	rule := result.MatchedRule
	if result.EntryType.RequiresAuthorization() {
		days, _ := ProcessingDays(rule.Output.ProcessingTime)
		applyBy := result.Input.DepartureDate.AddDate(0, 0, -days)
		if !now.Before(applyBy.Add(-applyWindowLead)) {
			due := applyBy
			notices = append(notices, Notice{
				Kind:    NoticeApplyNow,
				Title:   fmt.Sprintf("Apply for your %s %s", rule.CountryName, entryLabel(result.EntryType)),
				Message: applyMessage(rule, applyBy, now),
				DueAt:   &due,
			})
		}
	}
	if result.LetterTemplate != "" && !result.Input.NeedsInvitationLetter {
		notices = append(notices, Notice{
			Kind:    NoticeLetterAvailable,
			Title:   "Invitation letter available for " + rule.CountryName,
			Message: "An invitation letter template exists for this destination. Generate one if immigration or the consulate may ask for it.",
		})
	}
	return notices
}

func applyMessage(rule *catalog.Rule, applyBy, now time.Time) string {
	if rule.Output.ProcessingTime == "" {
		return "Apply before you travel."
	}
	if now.After(applyBy) {
		return fmt.Sprintf("Processing usually takes %s and the window has already started. Apply today.", rule.Output.ProcessingTime)
	}
	return fmt.Sprintf("Processing usually takes %s. Apply by %s.", rule.Output.ProcessingTime, applyBy.Format("January 2, 2006"))
}

func entryLabel(t catalog.EntryType) string {
	switch t {
	case catalog.EntryETA:
		return "travel authorization"
	case catalog.EntryEVisa:
		return "eVisa"
	default:
		return "visa"
	}
}
