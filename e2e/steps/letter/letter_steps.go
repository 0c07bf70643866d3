package letter

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetLastBody() []byte
}

// RegisterSteps registers invitation letter steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &letterSteps{tc: tc}

	ctx.Step(`^I generate a "([^"]*)" letter for "([^"]*)"$`, steps.generate)
	ctx.Step(`^I download the "([^"]*)" letter as docx$`, steps.generateDocx)
	ctx.Step(`^the response should be a zip archive$`, steps.isZip)
}

type letterSteps struct {
	tc TestContext
}

func (s *letterSteps) generate(ctx context.Context, templateID, name string) error {
	return s.tc.POST("/letters", map[string]any{
		"templateId": templateID,
		"fields": map[string]string{
			"EMPLOYEE_NAME":  name,
			"DEPARTURE_DATE": "2026-11-02",
			"RETURN_DATE":    "2026-11-06",
		},
	})
}

func (s *letterSteps) generateDocx(ctx context.Context, templateID string) error {
	return s.tc.POST("/letters/docx", map[string]any{"templateId": templateID})
}

// isZip checks the local file header magic; a .docx is a zip package.
func (s *letterSteps) isZip(ctx context.Context) error {
	body := s.tc.GetLastBody()
	if len(body) < 4 || string(body[:4]) != "PK\x03\x04" {
		return fmt.Errorf("response is not a zip archive (%d bytes)", len(body))
	}
	return nil
}
