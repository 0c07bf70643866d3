package handler

import (
	"strings"

	"tripcheck/internal/letter"
	dErrors "tripcheck/pkg/domain-errors"
)

// maxFields bounds the merge map before per-field validation runs.
const maxFields = 16

// LetterRequest is the HTTP request body for POST /letters and /letters/docx.
type LetterRequest struct {
	TemplateID string            `json:"templateId"`
	Fields     map[string]string `json:"fields"`
}

// Validate normalises the template id and checks the merge map. Unknown
// template ids are left for the service so they surface as 404.
func (r *LetterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.TemplateID = strings.ToUpper(strings.TrimSpace(r.TemplateID))
	if r.TemplateID == "" {
		return dErrors.NewField(dErrors.CodeValidation, "templateId", "templateId is required")
	}
	if len(r.Fields) > maxFields {
		return dErrors.NewField(dErrors.CodeValidation, "fields", "too many merge fields")
	}
	return letter.ValidateFields(r.Fields)
}

// ToDomain converts the validated request.
func (r *LetterRequest) ToDomain() letter.Request {
	return letter.Request{TemplateID: letter.TemplateID(r.TemplateID), Fields: r.Fields}
}
