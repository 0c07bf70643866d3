package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tripcheck/pkg/domain-errors"
)

func testPolicy() map[string]any {
	return map[string]any{
		"bookingGuidance":  "Book through the travel portal.",
		"approvalWorkflow": "Manager approval required.",
		"expensePolicy":    "Fees are reimbursable.",
		"insurancePolicy":  "Corporate insurance applies.",
	}
}

func testRule(id, country, name string, citizenships []string, entryType, letterTemplate string) map[string]any {
	r := map[string]any{
		"id":          id,
		"countryCode": country,
		"countryName": name,
		"purposes":    []string{"business_meeting", "conference"},
		"requirements": []any{
			map[string]any{
				"id":          id + "-entry",
				"title":       "Entry",
				"description": "Entry rules",
				"type":        "entry",
				"severity":    "required",
			},
		},
		"output": map[string]any{
			"entryType":   entryType,
			"maxStayDays": 90,
		},
	}
	if citizenships != nil {
		r["citizenships"] = citizenships
	}
	if letterTemplate != "" {
		r["output"].(map[string]any)["letterTemplate"] = letterTemplate
	}
	return r
}

func testDoc(rules ...map[string]any) map[string]any {
	rs := make([]any, len(rules))
	for i, r := range rules {
		rs[i] = r
	}
	return map[string]any{
		"version":     "1.2.0",
		"lastUpdated": "2026-01-15",
		"policy":      testPolicy(),
		"rules":       rs,
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	data, format, err := EmbeddedSource{}.Fetch(t.Context())
	require.NoError(t, err)

	cat, err := Load(data, format)
	require.NoError(t, err)

	assert.Equal(t, "2.4.0", cat.Version())
	assert.Equal(t, 21, cat.Len())
	assert.Empty(t, cat.Warnings())
	assert.NotEmpty(t, cat.Policy().BookingGuidance)
	assert.Equal(t, uint64(2), cat.SemVer().Major())
}

func TestLoadValidDocument(t *testing.T) {
	doc := testDoc(
		testRule("jp-business", "JP", "Japan", []string{"US", "US", "CA"}, "NONE", "JP"),
		testRule("sg-business", "SG", "Singapore", nil, "NONE", ""),
	)

	cat, err := Load(mustJSON(t, doc), FormatJSON)
	require.NoError(t, err)

	rule, ok := cat.Rule("jp-business")
	require.True(t, ok)
	assert.Equal(t, []string{"US", "CA"}, rule.Citizenships, "citizenships are deduplicated")
	assert.False(t, rule.IsWildcard())
	assert.Equal(t, EntryNone, rule.Output.EntryType)

	sg, ok := cat.Rule("sg-business")
	require.True(t, ok)
	assert.True(t, sg.IsWildcard())
	assert.True(t, sg.AppliesTo("IN"))
}

func TestLoadYAML(t *testing.T) {
	yamlDoc := `
version: "3.0.1"
lastUpdated: "2026-02-01"
policy:
  bookingGuidance: Book early.
  approvalWorkflow: Ask your manager.
  expensePolicy: Keep receipts.
  insurancePolicy: You are covered.
rules:
  - id: gb-eta
    countryCode: GB
    countryName: United Kingdom
    purposes: [business_meeting]
    citizenships: [US]
    requirements:
      - id: gb-eta-entry
        title: UK ETA
        description: Apply online.
        type: entry
        severity: required
        fee: {amount: 16, currency: GBP, reimbursable: true}
    output:
      entryType: ETA
      maxStayDays: 180
      processingTime: up to 3 business days
      letterTemplate: UK
`
	cat, err := Load([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)

	rule, ok := cat.Rule("gb-eta")
	require.True(t, ok)
	assert.Equal(t, EntryETA, rule.Output.EntryType)
	require.NotNil(t, rule.Requirements[0].Fee)
	assert.Equal(t, "16", rule.Requirements[0].Fee.Amount.String())
	assert.Equal(t, "UK", rule.Output.LetterTemplate)
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc map[string]any)
		problem string
	}{
		{
			name:    "missing policy",
			mutate:  func(doc map[string]any) { delete(doc, "policy") },
			problem: "policy",
		},
		{
			name: "empty purposes",
			mutate: func(doc map[string]any) {
				firstRule(doc)["purposes"] = []string{}
			},
			problem: "/rules/0/purposes",
		},
		{
			name: "unknown purpose",
			mutate: func(doc map[string]any) {
				firstRule(doc)["purposes"] = []string{"vacation"}
			},
			problem: "/rules/0/purposes/0",
		},
		{
			name: "lowercase country code",
			mutate: func(doc map[string]any) {
				firstRule(doc)["countryCode"] = "jp"
			},
			problem: "/rules/0/countryCode",
		},
		{
			name: "unknown requirement type",
			mutate: func(doc map[string]any) {
				firstRule(doc)["requirements"].([]any)[0].(map[string]any)["type"] = "paperwork"
			},
			problem: "/rules/0/requirements/0/type",
		},
		{
			name: "unknown entry type",
			mutate: func(doc map[string]any) {
				firstRule(doc)["output"].(map[string]any)["entryType"] = "MAYBE"
			},
			problem: "/rules/0/output/entryType",
		},
		{
			name: "unexpected field",
			mutate: func(doc map[string]any) {
				firstRule(doc)["priority"] = 1
			},
			problem: "/rules/0",
		},
		{
			name: "not an ISO country",
			mutate: func(doc map[string]any) {
				firstRule(doc)["countryCode"] = "ZZ"
			},
			problem: "countryCode \"ZZ\" is not an ISO 3166-1 alpha-2 country",
		},
		{
			name: "citizenship not an ISO country",
			mutate: func(doc map[string]any) {
				firstRule(doc)["citizenships"] = []string{"ZZ"}
			},
			problem: "citizenship \"ZZ\"",
		},
		{
			name: "duplicate rule id",
			mutate: func(doc map[string]any) {
				doc["rules"] = append(doc["rules"].([]any), testRule("jp-business", "DE", "Germany", nil, "NONE", ""))
			},
			problem: "duplicate rule id",
		},
		{
			name: "letter template outside allow-list",
			mutate: func(doc map[string]any) {
				firstRule(doc)["output"].(map[string]any)["letterTemplate"] = "XX"
			},
			problem: "letterTemplate \"XX\" is not an available template",
		},
		{
			name:    "version is not semver",
			mutate:  func(doc map[string]any) { doc["version"] = "next" },
			problem: "not a semantic version",
		},
		{
			name: "negative fee",
			mutate: func(doc map[string]any) {
				firstRule(doc)["output"].(map[string]any)["fee"] = map[string]any{"amount": "-5", "currency": "USD"}
			},
			problem: "fee amount must not be negative",
		},
		{
			name: "action url is not http",
			mutate: func(doc map[string]any) {
				firstRule(doc)["requirements"].([]any)[0].(map[string]any)["actions"] = []any{
					map[string]any{"label": "Apply", "url": "javascript:alert(1)"},
				}
			},
			problem: "invalid url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc(testRule("jp-business", "JP", "Japan", []string{"US"}, "NONE", "JP"))
			tt.mutate(doc)

			cat, err := Load(mustJSON(t, doc), FormatJSON)
			require.Error(t, err)
			assert.Nil(t, cat)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeCatalogInvalid))
			assert.Contains(t, strings.Join(verr.Problems, "\n"), tt.problem)
		})
	}
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	_, err := Load([]byte(`{"version": `), FormatJSON)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "malformed JSON")

	_, err = Load([]byte("version: [unclosed"), FormatYAML)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "malformed YAML")
}

func TestValidationErrorMessage(t *testing.T) {
	one := &ValidationError{Problems: []string{"a"}}
	assert.Equal(t, "catalog invalid: a", one.Error())

	many := &ValidationError{Problems: []string{"a", "b"}}
	assert.Equal(t, "catalog invalid: 2 problems: a; b", many.Error())
}

func firstRule(doc map[string]any) map[string]any {
	return doc["rules"].([]any)[0].(map[string]any)
}
