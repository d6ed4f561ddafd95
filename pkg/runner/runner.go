// Package runner executes scenarios against a step registry and assembles
// timed results. RunScenario never lets an execution error escape; every
// outcome is folded into the returned ScenarioResult.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/denizgursoy/pickle/pkg/filter"
	"github.com/denizgursoy/pickle/pkg/gherkin"
	"github.com/denizgursoy/pickle/pkg/models"
	"github.com/denizgursoy/pickle/pkg/steps"
)

type runOptions struct {
	featureName string
	sourceFile  string
	hooks       *models.Config
	tagFilter   *filter.TagFilter
}

// Option adjusts a single RunScenario or RunFeature call.
type Option func(*runOptions)

// WithFeatureInfo attaches the containing feature's name and source file to
// error messages produced during the run.
func WithFeatureInfo(featureName, sourceFile string) Option {
	return func(o *runOptions) {
		o.featureName = featureName
		o.sourceFile = sourceFile
	}
}

// WithHooks installs before/after step hooks for the run.
func WithHooks(config *models.Config) Option {
	return func(o *runOptions) { o.hooks = config }
}

// WithTagFilter restricts RunFeature to scenarios whose combined feature and
// scenario tags pass the filter.
func WithTagFilter(f filter.TagFilter) Option {
	return func(o *runOptions) { o.tagFilter = &f }
}

// RunScenario executes the background steps (when a background is given)
// followed by the scenario steps, in source order. The first undefined,
// ambiguous or failing step stops execution; every later step is marked
// skipped. The result is always returned, never an error.
func RunScenario(ctx context.Context, registry *steps.Registry, background *gherkin.Background, scenario *gherkin.Scenario, opts ...Option) models.ScenarioResult {
	options := applyOptions(opts)
	start := time.Now()

	result := models.ScenarioResult{
		Name: scenario.Name,
		Tags: scenario.Tags,
	}

	var allSteps []gherkin.Step
	if background != nil {
		allSteps = append(allSteps, background.Steps...)
		result.BackgroundStepCount = len(background.Steps)
	}
	allSteps = append(allSteps, scenario.Steps...)

	runErr := runSteps(ctx, registry, allSteps, scenario, options, &result)

	if runErr != nil {
		failedAt := result.StepsExecuted
		if failedAt < len(allSteps) {
			status := models.StatusFailed
			var undefined *UndefinedStepError
			if errors.As(runErr, &undefined) {
				status = models.StatusUndefined
			}
			var locs []int
			var failed *StepFailedError
			if errors.As(runErr, &failed) {
				locs = failed.MatchLocs
			}
			failing := allSteps[failedAt]
			result.StepResults = append(result.StepResults, models.StepResult{
				Keyword:   string(failing.Keyword),
				Text:      failing.Text,
				Status:    status,
				Error:     runErr.Error(),
				Line:      failing.Line,
				MatchLocs: locs,
			})
			for _, remaining := range allSteps[failedAt+1:] {
				result.StepResults = append(result.StepResults, models.StepResult{
					Keyword: string(remaining.Keyword),
					Text:    remaining.Text,
					Status:  models.StatusSkipped,
					Line:    remaining.Line,
				})
			}
		}
		result.Err = runErr
	}

	result.Passed = runErr == nil
	result.Duration = time.Since(start)
	return result
}

// runSteps executes steps until the first error, appending a passed
// StepResult per completed step and counting it in StepsExecuted.
func runSteps(ctx context.Context, registry *steps.Registry, allSteps []gherkin.Step, scenario *gherkin.Scenario, options runOptions, result *models.ScenarioResult) error {
	if errs := registry.RegistrationErrors(); len(errs) > 0 {
		return invalidDefinitionsError(errs)
	}

	for _, step := range allSteps {
		stepStart := time.Now()

		handler, match, ok, err := registry.Match(step)
		if err != nil {
			return &StepFailedError{
				Step:         step,
				FeatureName:  options.featureName,
				ScenarioName: scenario.Name,
				Err:          err,
			}
		}
		if !ok {
			return &UndefinedStepError{
				Step:        step,
				FeatureName: options.featureName,
				SourceFile:  options.sourceFile,
			}
		}

		if err := invokeStep(ctx, handler, match, options.hooks); err != nil {
			return &StepFailedError{
				Step:         step,
				FeatureName:  options.featureName,
				ScenarioName: scenario.Name,
				Err:          err,
				MatchLocs:    match.MatchLocs,
			}
		}

		result.StepsExecuted++
		result.StepResults = append(result.StepResults, models.StepResult{
			Keyword:   string(step.Keyword),
			Text:      step.Text,
			Status:    models.StatusPassed,
			Duration:  time.Since(stepStart),
			Line:      step.Line,
			MatchLocs: match.MatchLocs,
		})
	}
	return nil
}

func invokeStep(ctx context.Context, handler steps.Handler, match steps.StepMatch, hooks *models.Config) error {
	if hooks != nil && hooks.BeforeStep != nil {
		if err := hooks.BeforeStep(ctx); err != nil {
			return err
		}
	}
	if err := handler(ctx, match); err != nil {
		return err
	}
	if hooks != nil && hooks.AfterStep != nil {
		if err := hooks.AfterStep(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunFeature expands the feature's outlines and runs every concrete
// scenario that passes the tag filter, in declaration order. Scenarios the
// filter excludes produce no result at this layer; recording them as
// skipped is the collector's business, not this one's.
func RunFeature(ctx context.Context, registry *steps.Registry, feature *gherkin.Feature, opts ...Option) models.FeatureResult {
	options := applyOptions(opts)
	start := time.Now()

	expanded := gherkin.Expand(feature)
	result := models.FeatureResult{
		Name:       feature.Name,
		SourceFile: feature.SourceFile,
		Tags:       feature.Tags,
	}

	scenarioOpts := append([]Option{WithFeatureInfo(feature.Name, feature.SourceFile)}, opts...)

	for _, scenario := range expanded.Scenarios() {
		if options.tagFilter != nil {
			combined := append(append([]string(nil), feature.Tags...), scenario.Tags...)
			if !options.tagFilter.Allows(combined) {
				continue
			}
		}
		scenarioResult := RunScenario(ctx, registry, expanded.Background, scenario, scenarioOpts...)
		result.ScenarioResults = append(result.ScenarioResults, scenarioResult)
	}

	result.Duration = time.Since(start)
	return result
}

func applyOptions(opts []Option) runOptions {
	var options runOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
