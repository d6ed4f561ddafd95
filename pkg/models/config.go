package models

import "context"

type (
	// Config carries the optional suite hooks. Any nil hook is skipped.
	Config struct {
		// BeforeAll runs once before all scenarios.
		BeforeAll func(ctx context.Context) error

		// AfterAll runs once after all scenarios.
		AfterAll func(ctx context.Context) error

		// BeforeScenario runs before each selected scenario.
		BeforeScenario func(ctx context.Context, scenarioName string) error

		// AfterScenario runs after each selected scenario whose
		// BeforeScenario hook succeeded; it is not called when BeforeScenario
		// returned an error. The error is nil when the scenario passed.
		AfterScenario func(ctx context.Context, scenarioName string, err error)

		// BeforeStep runs before each step handler.
		BeforeStep func(ctx context.Context) error

		// AfterStep runs after each successful step handler.
		AfterStep func(ctx context.Context) error
	}
)
