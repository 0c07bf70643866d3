package handler

import (
	"tripcheck/internal/letter"
)

// LetterResponse is the HTTP response for POST /letters.
type LetterResponse struct {
	TemplateID string `json:"templateId"`
	Body       string `json:"body"`
}

// TemplateResponse describes one available template.
type TemplateResponse struct {
	ID          string `json:"id"`
	CountryName string `json:"countryName"`
	Addressee   string `json:"addressee"`
}

// TemplatesResponse is the HTTP response for GET /letters/templates.
type TemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Fields    []string           `json:"fields"`
}

func FromLetter(l *letter.Letter) *LetterResponse {
	return &LetterResponse{TemplateID: string(l.TemplateID), Body: l.Body}
}

func FromTemplates(ts []letter.Template) *TemplatesResponse {
	out := &TemplatesResponse{
		Templates: make([]TemplateResponse, 0, len(ts)),
		Fields:    letter.Fields(),
	}
	for _, t := range ts {
		out.Templates = append(out.Templates, TemplateResponse{
			ID:          string(t.ID),
			CountryName: t.CountryName,
			Addressee:   t.Addressee,
		})
	}
	return out
}
