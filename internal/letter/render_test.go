package letter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tripcheck/pkg/domain-errors"
)

var issued = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

func TestRenderMissingTitleUsesDefault(t *testing.T) {
	l, err := Render("US", map[string]string{
		FieldEmployeeName:  "Ada Okafor",
		FieldEmployeeEmail: "ada.okafor@carta.com",
	}, issued)
	require.NoError(t, err)

	assert.Contains(t, l.Body, "Ada Okafor, Team Member")
	assert.NotContains(t, l.Body, FieldEmployeeTitle)
}

func TestRenderEmptyMapLeavesNoPlaceholders(t *testing.T) {
	for _, tmpl := range Templates() {
		t.Run(string(tmpl.ID), func(t *testing.T) {
			l, err := Render(tmpl.ID, nil, issued)
			require.NoError(t, err)
			assert.NotContains(t, l.Body, "{{")
			assert.NotContains(t, l.Body, "}}")
			assert.Contains(t, l.Body, "Employee, Team Member")
			assert.Contains(t, l.Body, "To be confirmed")
			assert.Contains(t, l.Body, "October 17, 2026")
			assert.Contains(t, l.Body, tmpl.CountryName)
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	fields := map[string]string{FieldEmployeeName: "Kenji Sato", FieldDepartureDate: "2026-11-02"}
	a, err := Render("JP", fields, issued)
	require.NoError(t, err)
	b, err := Render("JP", fields, issued)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderFormatsDates(t *testing.T) {
	l, err := Render("DE", map[string]string{
		FieldDepartureDate: "2026-11-02",
		FieldReturnDate:    "2026-11-06",
		FieldIssueDate:     "2026-10-01",
	}, issued)
	require.NoError(t, err)

	assert.Contains(t, l.Body, "from November 2, 2026 to November 6, 2026")
	assert.True(t, strings.HasPrefix(l.Body, "October 1, 2026"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("ZZ", nil, issued)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTemplateNotFound))
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		field  string
	}{
		{"unknown key", map[string]string{"employeeName": "x"}, "employeeName"},
		{"too long", map[string]string{FieldHostCompany: strings.Repeat("a", 201)}, FieldHostCompany},
		{"malformed date", map[string]string{FieldReturnDate: "06/11/2026"}, FieldReturnDate},
		{"placeholder token", map[string]string{FieldEmployeeName: "{{EMPLOYEE_TITLE}}"}, FieldEmployeeName},
		{"closing braces", map[string]string{FieldHostCompany: "Carta }}"}, FieldHostCompany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.fields)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.field, dErrors.FieldOf(err))
		})
	}

	t.Run("blank values are allowed", func(t *testing.T) {
		assert.NoError(t, ValidateFields(map[string]string{FieldDepartureDate: "  "}))
	})
}

func TestRenderRejectsInjectedPlaceholders(t *testing.T) {
	_, err := Render("US", map[string]string{FieldEmployeeName: "{{EMPLOYEE_TITLE}}"}, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, FieldEmployeeName, dErrors.FieldOf(err))
}

func TestAllowList(t *testing.T) {
	for _, id := range []TemplateID{"US", "UK", "CA", "DE", "JP", "BR", "FR", "IN", "SG", "AU"} {
		assert.True(t, IsAllowed(id), id)
	}
	assert.False(t, IsAllowed("GB"))
	assert.False(t, IsAllowed("us"))
	assert.Len(t, Templates(), 10)
}
