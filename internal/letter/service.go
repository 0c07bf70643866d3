package letter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"tripcheck/pkg/requestcontext"
)

// Request asks for a letter from a template.
type Request struct {
	TemplateID TemplateID
	Fields     map[string]string
}

// Document is a packaged letter file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service renders letters, filling gaps from the authenticated employee.
type Service struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(opts ...Option) *Service {
	s := &Service{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Templates lists the available templates.
func (s *Service) Templates() []Template {
	return Templates()
}

// Generate renders a text letter.
func (s *Service) Generate(ctx context.Context, req Request) (*Letter, error) {
	fields := withEmployeeClaims(ctx, req.Fields)
	l, err := Render(req.TemplateID, fields, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementRendered(req.TemplateID, "text")
	s.logger.InfoContext(ctx, "letter rendered",
		"request_id", requestcontext.RequestID(ctx),
		"template", req.TemplateID,
		"format", "text",
	)
	return &l, nil
}

// GenerateDocx renders a letter and packages it as .docx.
func (s *Service) GenerateDocx(ctx context.Context, req Request) (*Document, error) {
	fields := withEmployeeClaims(ctx, req.Fields)
	now := requestcontext.Now(ctx)
	l, err := Render(req.TemplateID, fields, now)
	if err != nil {
		return nil, err
	}
	data, err := PackageDocx(l.Body, now)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementRendered(req.TemplateID, "docx")
	s.logger.InfoContext(ctx, "letter rendered",
		"request_id", requestcontext.RequestID(ctx),
		"template", req.TemplateID,
		"format", "docx",
		"bytes", len(data),
	)
	return &Document{
		Filename:    fmt.Sprintf("invitation-letter-%s.docx", strings.ToLower(string(req.TemplateID))),
		ContentType: DocxContentType,
		Data:        data,
	}, nil
}

// withEmployeeClaims copies fields and fills blanks from the token claims.
// Explicit request values always win.
func withEmployeeClaims(ctx context.Context, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields)+4)
	for k, v := range fields {
		out[k] = v
	}
	emp, ok := requestcontext.Employee(ctx)
	if !ok {
		return out
	}
	fill := func(key, value string) {
		if strings.TrimSpace(out[key]) == "" && value != "" {
			out[key] = value
		}
	}
	fill(FieldEmployeeName, emp.Name)
	fill(FieldEmployeeEmail, emp.Email)
	fill(FieldEmployeeTitle, emp.Title)
	fill(FieldEmployeeCitizenship, citizenshipName(emp.Citizenship))
	return out
}

// citizenshipName expands an ISO region code from the token into its English
// name, leaving anything else untouched.
func citizenshipName(code string) string {
	if len(code) != 2 {
		return code
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return code
	}
	return display.English.Regions().Name(region)
}
