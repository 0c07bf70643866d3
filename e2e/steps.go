package e2e

import (
	"github.com/cucumber/godog"

	"tripcheck/e2e/steps/common"
	"tripcheck/e2e/steps/letter"
	"tripcheck/e2e/steps/trip"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Trip resolution and quick-check assessments
	trip.RegisterSteps(ctx, tc)

	// Invitation letters
	letter.RegisterSteps(ctx, tc)
}
