package letter

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	dErrors "tripcheck/pkg/domain-errors"
)

// Merge field keys accepted by Render.
const (
	FieldEmployeeName        = "EMPLOYEE_NAME"
	FieldEmployeeEmail       = "EMPLOYEE_EMAIL"
	FieldEmployeeTitle       = "EMPLOYEE_TITLE"
	FieldEmployeeCitizenship = "EMPLOYEE_CITIZENSHIP"
	FieldDepartureDate       = "DEPARTURE_DATE"
	FieldReturnDate          = "RETURN_DATE"
	FieldHostCompany         = "HOST_COMPANY"
	FieldIssueDate           = "ISSUE_DATE"
)

const (
	maxFieldLength = 200
	inputDate      = "2006-01-02"
	letterDate     = "January 2, 2006"
)

var fieldDefaults = map[string]string{
	FieldEmployeeName:        "Employee",
	FieldEmployeeEmail:       "travel@carta.com",
	FieldEmployeeTitle:       "Team Member",
	FieldEmployeeCitizenship: "Not specified",
	FieldDepartureDate:       "To be confirmed",
	FieldReturnDate:          "To be confirmed",
	FieldHostCompany:         "Carta",
}

var dateFields = map[string]bool{
	FieldDepartureDate: true,
	FieldReturnDate:    true,
	FieldIssueDate:     true,
}

// Fields lists the accepted merge keys.
func Fields() []string {
	return []string{
		FieldEmployeeName, FieldEmployeeEmail, FieldEmployeeTitle, FieldEmployeeCitizenship,
		FieldDepartureDate, FieldReturnDate, FieldHostCompany, FieldIssueDate,
	}
}

func isField(key string) bool {
	if key == FieldIssueDate {
		return true
	}
	_, ok := fieldDefaults[key]
	return ok
}

// Letter is a rendered letter body.
type Letter struct {
	TemplateID TemplateID `json:"templateId"`
	Body       string     `json:"body"`
}

// Render fills template id with fields. Every placeholder has a default, so
// the output never contains a literal {{FIELD}} token. today supplies the
// issue date when ISSUE_DATE is absent.
func Render(id TemplateID, fields map[string]string, today time.Time) (Letter, error) {
	tmpl, ok := Lookup(id)
	if !ok {
		return Letter{}, dErrors.NewField(dErrors.CodeTemplateNotFound, "templateId", fmt.Sprintf("no letter template %q", id))
	}
	if err := ValidateFields(fields); err != nil {
		return Letter{}, err
	}

	values := make(map[string]string, len(fieldDefaults)+1)
	for k, v := range fieldDefaults {
		values[k] = v
	}
	values[FieldIssueDate] = today.Format(letterDate)
	for k, v := range fields {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if dateFields[k] {
			d, _ := time.Parse(inputDate, v)
			v = d.Format(letterDate)
		}
		values[k] = v
	}

	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	body := strings.NewReplacer(pairs...).Replace(tmpl.Body)
	return Letter{TemplateID: id, Body: body}, nil
}

// ValidateFields rejects unknown keys, over-long values, placeholder tokens
// and malformed dates.
func ValidateFields(fields map[string]string) error {
	for _, k := range sortedKeys(fields) {
		v := strings.TrimSpace(fields[k])
		if !isField(k) {
			return dErrors.NewField(dErrors.CodeValidation, k, fmt.Sprintf("unknown merge field %q", k))
		}
		if utf8.RuneCountInString(v) > maxFieldLength {
			return dErrors.NewField(dErrors.CodeValidation, k, fmt.Sprintf("%s must be at most %d characters", k, maxFieldLength))
		}
		if strings.Contains(v, "{{") || strings.Contains(v, "}}") {
			return dErrors.NewField(dErrors.CodeValidation, k, fmt.Sprintf("%s must not contain placeholder braces", k))
		}
		if v != "" && dateFields[k] {
			if _, err := time.Parse(inputDate, v); err != nil {
				return dErrors.NewField(dErrors.CodeValidation, k, fmt.Sprintf("%s must be a YYYY-MM-DD date", k))
			}
		}
	}
	return nil
}

func replaceStatic(s string, pairs map[string]string) string {
	for k, v := range pairs {
		s = strings.ReplaceAll(s, k, v)
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
