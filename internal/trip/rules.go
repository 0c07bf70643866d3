package trip

import (
	"strings"
	"time"

	"tripcheck/internal/catalog"
	"tripcheck/internal/letter"
)

// Match returns the single best rule for (destination, purpose, citizenship),
// or nil when the catalog does not cover the trip.
// Ordering: a rule naming the citizenship beats a wildcard rule; among rules
// of equal specificity the earliest in catalog order wins.
func Match(cat *catalog.Catalog, destination string, purpose catalog.Purpose, citizenship string) *catalog.Rule {
	citizenship = strings.ToUpper(citizenship)
	candidates := cat.Candidates(strings.ToUpper(destination), purpose)

	var wildcard *catalog.Rule
	for i := range candidates {
		r := &candidates[i]
		if r.IsWildcard() {
			if wildcard == nil {
				wildcard = r
			}
			continue
		}
		if r.AppliesTo(citizenship) {
			return r
		}
	}
	return wildcard
}

// Classify is the one place an entry-authorization category is derived.
// Trip resolution and quick assessment both project their output from it.
func Classify(cat *catalog.Catalog, destination string, purpose catalog.Purpose, citizenship string) Classification {
	rule := Match(cat, destination, purpose, citizenship)
	if rule == nil {
		return Classification{EntryType: catalog.EntryUnknown}
	}
	out := rule.Output
	return Classification{
		Rule:           rule,
		EntryType:      out.EntryType,
		MaxStayDays:    out.MaxStayDays,
		ProcessingTime: out.ProcessingTime,
		Fee:            out.Fee,
		Governance:     out.Governance,
		Sources:        out.Sources,
		LetterTemplate: letter.TemplateID(out.LetterTemplate),
	}
}

const policyRequirementID = "carta-travel-policy"

// GenericRequirements is the fallback list for trips no rule covers.
func GenericRequirements() []catalog.Requirement {
	return []catalog.Requirement{
		{
			ID:          "generic-passport",
			Title:       "Valid passport",
			Description: "Make sure your passport is valid for at least six months beyond your return date and has blank pages.",
			Type:        catalog.RequirementDocument,
			Severity:    catalog.SeverityRequired,
		},
		{
			ID:          "generic-visa-check",
			Title:       "Check visa requirements",
			Description: "This destination is not covered by the travel catalog. Check the official government or embassy website for entry rules before booking.",
			Type:        catalog.RequirementEntry,
			Severity:    catalog.SeverityRequired,
			Details: []string{
				"Entry rules depend on your citizenship and the purpose of your trip.",
				"Contact the travel team if you are unsure what applies.",
			},
		},
		{
			ID:          "generic-insurance",
			Title:       "Travel insurance",
			Description: "Confirm your travel insurance covers medical care at the destination.",
			Type:        catalog.RequirementHealth,
			Severity:    catalog.SeverityRecommended,
		},
	}
}

// PolicyRequirement renders the corporate travel policy as the mandatory
// trailing requirement.
func PolicyRequirement(policy catalog.Policy) catalog.Requirement {
	return catalog.Requirement{
		ID:          policyRequirementID,
		Title:       "Carta travel policy",
		Description: policy.BookingGuidance,
		Type:        catalog.RequirementPolicy,
		Severity:    catalog.SeverityRequired,
		Details: []string{
			policy.ApprovalWorkflow,
			policy.ExpensePolicy,
			policy.InsurancePolicy,
		},
	}
}

// ComposeRequirements returns the rule's requirements in authored order, or
// the generic fallback when rule is nil, followed by exactly one policy
// requirement. The result never aliases catalog slices.
func ComposeRequirements(rule *catalog.Rule, policy catalog.Policy) []catalog.Requirement {
	var base []catalog.Requirement
	if rule != nil {
		base = rule.Requirements
	} else {
		base = GenericRequirements()
	}

	out := make([]catalog.Requirement, 0, len(base)+1)
	for _, req := range base {
		req.Details = cloneStrings(req.Details)
		if req.Actions != nil {
			req.Actions = append([]catalog.Action(nil), req.Actions...)
		}
		out = append(out, req)
	}
	return append(out, PolicyRequirement(policy))
}

// LetterEligibility is the outcome of the letter resolver. An empty Template
// means no letter program exists for the destination.
type LetterEligibility struct {
	Eligible bool
	Template letter.TemplateID
}

// ResolveLetterEligibility reports whether a letter can be generated and was
// asked for. A rule without a template is never eligible.
func ResolveLetterEligibility(rule *catalog.Rule, needsInvitationLetter bool) LetterEligibility {
	if rule == nil || rule.Output.LetterTemplate == "" {
		return LetterEligibility{}
	}
	tmpl := letter.TemplateID(rule.Output.LetterTemplate)
	return LetterEligibility{
		Eligible: needsInvitationLetter,
		Template: tmpl,
	}
}

// Resolve builds the full trip result. Pure: no I/O, no shared state.
func Resolve(cat *catalog.Catalog, in TripInput, now time.Time) *TripResult {
	cls := Classify(cat, in.Destination, in.Purpose, in.Citizenship)
	elig := ResolveLetterEligibility(cls.Rule, in.NeedsInvitationLetter)

	return &TripResult{
		Input:          in,
		MatchedRule:    cls.Rule,
		Requirements:   ComposeRequirements(cls.Rule, cat.Policy()),
		EntryType:      cls.EntryType,
		LetterEligible: elig.Eligible,
		LetterTemplate: elig.Template,
		DurationDays:   in.DurationDays(),
		CatalogVersion: cat.Version(),
		ResolvedAt:     now,
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
