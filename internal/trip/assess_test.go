package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcheck/internal/catalog"
	"tripcheck/internal/letter"
)

func embeddedLinks(t *testing.T) *catalog.VisaLinks {
	t.Helper()
	links, err := catalog.EmbeddedVisaLinks()
	require.NoError(t, err)
	return links
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssessElectronicAuthorization(t *testing.T) {
	cat := embeddedCatalog(t)
	in := AssessmentInput{
		Citizenship: "US",
		Destination: "GB",
		Purpose:     catalog.PurposeBusinessMeeting,
	}

	res := Assess(cat, embeddedLinks(t), in, fixedNow)

	assert.Equal(t, catalog.EntryETA, res.EntryType)
	assert.True(t, res.Required)
	assert.Equal(t, "United Kingdom", res.DestinationName)
	assert.Equal(t, "Electronic travel authorization required for United Kingdom", res.Headline)
	assert.Contains(t, res.Details, "Typical processing time: up to 3 business days.")
	assert.Equal(t, "gb-business-eta", res.RuleID)
	require.NotNil(t, res.MaxStayDays)
	assert.Equal(t, 180, *res.MaxStayDays)
	require.NotNil(t, res.Fee)
	assert.Equal(t, "GBP", res.Fee.Currency)
	assert.True(t, res.LetterAvailable)
	assert.Equal(t, letter.TemplateID("UK"), res.LetterTemplate)
	assert.Nil(t, res.ApplyBy, "no travel date, no deadline")

	require.Len(t, res.Actions, 2)
	assert.Equal(t, "https://www.gov.uk/eta", res.Actions[0].URL)
	assert.Equal(t, "Apply for the United Kingdom ETA", res.Actions[0].Label)
	assert.Equal(t, "https://www.gov.uk/browse/visas-immigration", res.Actions[1].URL)
}

func TestAssessEVisaActionLabel(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship: "US",
		Destination: "IN",
		Purpose:     catalog.PurposeBusinessMeeting,
	}, fixedNow)

	assert.Equal(t, catalog.EntryEVisa, res.EntryType)
	require.NotEmpty(t, res.Actions)
	assert.Equal(t, "Apply for the India eVisa", res.Actions[0].Label)
	assert.Equal(t, "https://indianvisaonline.gov.in/evisa/", res.Actions[0].URL)
	for _, a := range res.Actions {
		assert.NotContains(t, a.Label, "Apply for a India")
	}
}

func TestAssessVisaFree(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship: "US",
		Destination: "JP",
		Purpose:     catalog.PurposeBusinessMeeting,
	}, fixedNow)

	assert.Equal(t, catalog.EntryNone, res.EntryType)
	assert.False(t, res.Required)
	assert.Equal(t, "No visa required for Japan", res.Headline)
	assert.Equal(t, "United States citizens can travel to Japan for business meetings without prior authorization for up to 90 days.", res.Details)
	require.NotNil(t, res.Governance)
}

func TestAssessUnknownDestinationIsNeverRequired(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship: "US",
		Destination: "KE",
		Purpose:     catalog.PurposeConference,
		TravelDate:  date(2026, 12, 1),
	}, fixedNow)

	assert.Equal(t, catalog.EntryUnknown, res.EntryType)
	assert.False(t, res.Required)
	assert.Equal(t, "Kenya", res.DestinationName)
	assert.Equal(t, "Entry requirements unknown for Kenya", res.Headline)
	assert.Contains(t, res.Details, "do not assume the trip is visa-free")
	assert.Nil(t, res.MaxStayDays)
	assert.Nil(t, res.ApplyBy)
	assert.Empty(t, res.RuleID)
	assert.False(t, res.LetterAvailable)

	require.Len(t, res.Actions, 2)
	assert.Equal(t, "https://www.etakenya.go.ke/", res.Actions[0].URL)
	assert.Equal(t, "https://immigration.go.ke/", res.Actions[1].URL)
}

func TestAssessApplyByAndStayWarning(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship:  "IN",
		Destination:  "US",
		Purpose:      catalog.PurposeClientVisit,
		TravelDate:   date(2026, 12, 15),
		DurationDays: 200,
	}, fixedNow)

	assert.Equal(t, catalog.EntryVisa, res.EntryType)
	require.NotNil(t, res.ApplyBy)
	assert.Equal(t, date(2026, 10, 20), *res.ApplyBy, "eight weeks before travel")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "exceeds the 180-day maximum")
	assert.Equal(t, "https://travel.state.gov/content/travel/en/us-visas.html", res.Actions[0].URL, "visa portal first for a visa")
}

func TestAssessApplyWindowAlreadyPassed(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship: "US",
		Destination: "GB",
		Purpose:     catalog.PurposeConference,
		TravelDate:  date(2026, 10, 5),
	}, fixedNow)

	require.NotNil(t, res.ApplyBy)
	assert.Equal(t, date(2026, 9, 30), *res.ApplyBy)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Apply immediately")
}

func TestAssessTravelDateInPast(t *testing.T) {
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship: "US",
		Destination: "GB",
		Purpose:     catalog.PurposeConference,
		TravelDate:  date(2026, 9, 20),
	}, fixedNow)

	assert.Equal(t, []string{"Travel date is in the past."}, res.Warnings)
}

func TestAssessLetterNeedsSponsorship(t *testing.T) {
	no := false
	res := Assess(embeddedCatalog(t), embeddedLinks(t), AssessmentInput{
		Citizenship:       "US",
		Destination:       "JP",
		Purpose:           catalog.PurposeConference,
		EmployerSponsored: &no,
	}, fixedNow)

	assert.False(t, res.LetterAvailable)
	assert.Equal(t, letter.TemplateID("JP"), res.LetterTemplate)
}

func TestAssessAgreesWithResolve(t *testing.T) {
	cat := embeddedCatalog(t)
	for _, dest := range []string{"JP", "GB", "US", "CA", "DE", "FR", "IN", "BR", "SG", "AU", "MX", "KE"} {
		for _, cit := range []string{"US", "IN", "GB", "BR"} {
			trip := Resolve(cat, tripInput(cit, dest, catalog.PurposeConference), fixedNow)
			quick := Assess(cat, nil, AssessmentInput{Citizenship: cit, Destination: dest, Purpose: catalog.PurposeConference}, fixedNow)
			assert.Equal(t, trip.EntryType, quick.EntryType, "%s -> %s", cit, dest)
		}
	}
}

func TestDestinationNameFallbacks(t *testing.T) {
	cat := embeddedCatalog(t)
	links := embeddedLinks(t)

	rule, _ := cat.Rule("jp-business-visa-free")
	assert.Equal(t, "Japan", DestinationName(cat, links, &rule, "JP"))
	assert.Equal(t, "Germany", DestinationName(cat, nil, nil, "DE"), "any rule for the country")
	assert.Equal(t, "United Arab Emirates", DestinationName(cat, links, nil, "AE"), "visa link table")
	assert.Equal(t, "Norway", DestinationName(cat, links, nil, "NO"), "CLDR name")
	assert.Equal(t, "ZZ", DestinationName(cat, links, nil, "ZZ"))
}

func TestProcessingDays(t *testing.T) {
	tests := []struct {
		text string
		days int
		ok   bool
	}{
		{"2-8 weeks", 56, true},
		{"up to 3 business days", 5, true},
		{"5 business days", 7, true},
		{"1 business day", 2, true},
		{"3 to 5 business days", 7, true},
		{"10 working days", 14, true},
		{"3 weeks", 21, true},
		{"4 to 6 weeks", 42, true},
		{"15 days", 15, true},
		{"2 months", 60, true},
		{"", 0, false},
		{"varies by consulate", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			days, ok := ProcessingDays(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.days, days)
		})
	}
}
