package trip

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers trip resolution and assessment steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &tripSteps{tc: tc}

	ctx.Step(`^a "([^"]*)" citizen travelling to "([^"]*)" for "([^"]*)"$`, steps.setTraveller)
	ctx.Step(`^the trip runs from "([^"]*)" to "([^"]*)"$`, steps.setDates)
	ctx.Step(`^the traveller needs an invitation letter$`, steps.setNeedsLetter)

	ctx.Step(`^I resolve the trip$`, steps.resolve)
	ctx.Step(`^I run a quick check$`, steps.assess)
	ctx.Step(`^I run a quick check travelling on "([^"]*)"$`, steps.assessOn)

	ctx.Step(`^the last requirement should be the travel policy$`, steps.lastRequirementIsPolicy)
}

type tripSteps struct {
	tc TestContext

	citizenship, destination, purpose string
	departure, ret                    string
	needsLetter                       bool
}

func (s *tripSteps) setTraveller(ctx context.Context, citizenship, destination, purpose string) error {
	s.citizenship, s.destination, s.purpose = citizenship, destination, purpose
	s.departure, s.ret, s.needsLetter = "", "", false
	return nil
}

func (s *tripSteps) setDates(ctx context.Context, departure, ret string) error {
	s.departure, s.ret = departure, ret
	return nil
}

func (s *tripSteps) setNeedsLetter(ctx context.Context) error {
	s.needsLetter = true
	return nil
}

func (s *tripSteps) resolve(ctx context.Context) error {
	return s.tc.POST("/trips/resolve", map[string]any{
		"citizenship":           s.citizenship,
		"destination":           s.destination,
		"purpose":               s.purpose,
		"departureDate":         s.departure,
		"returnDate":            s.ret,
		"needsInvitationLetter": s.needsLetter,
	})
}

func (s *tripSteps) assess(ctx context.Context) error {
	return s.assessOn(ctx, "")
}

func (s *tripSteps) assessOn(ctx context.Context, travelDate string) error {
	body := map[string]any{
		"citizenship": s.citizenship,
		"destination": s.destination,
		"purpose":     s.purpose,
	}
	if travelDate != "" {
		body["travelDate"] = travelDate
	}
	return s.tc.POST("/assessments", body)
}

func (s *tripSteps) lastRequirementIsPolicy(ctx context.Context) error {
	v, err := s.tc.GetResponseField("requirements")
	if err != nil {
		return err
	}
	reqs, ok := v.([]any)
	if !ok || len(reqs) == 0 {
		return fmt.Errorf("expected a non-empty requirements list, got %v", v)
	}
	last, _ := reqs[len(reqs)-1].(map[string]any)
	if last["type"] != "policy" {
		return fmt.Errorf("expected the last requirement to be policy, got %v", last["type"])
	}
	return nil
}
