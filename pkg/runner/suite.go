package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/denizgursoy/pickle/internal/config"
	"github.com/denizgursoy/pickle/pkg/filter"
	"github.com/denizgursoy/pickle/pkg/gherkin"
	"github.com/denizgursoy/pickle/pkg/models"
	"github.com/denizgursoy/pickle/pkg/report"
	"github.com/denizgursoy/pickle/pkg/steps"
)

const defaultFeaturesDirectory = "features"

type (
	// Suite wires the whole engine together behind a fluent builder: it
	// parses the configured feature paths, applies the environment driven
	// filters, runs every selected scenario and hands results to the
	// collector, then writes the HTML report when enabled.
	Suite struct {
		registry           *steps.Registry
		collector          Collector
		reporter           Reporter
		console            *report.ConsoleReporter
		config             *models.Config
		logger             *logrus.Logger
		featureDirectories []string
	}
)

func NewSuite() *Suite {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Suite{
		registry:  steps.NewRegistry(),
		collector: models.NewCollector(),
		reporter:  report.HTMLReporter{},
		console:   report.NewConsoleReporter(true),
		logger:    logger,
	}
}

func (s *Suite) WithConfigFunc(configFunction func() *models.Config) *Suite {
	if configFunction != nil {
		s.config = configFunction()
	}
	return s
}

func (s *Suite) WithFeaturesDirectories(directories ...string) *Suite {
	s.featureDirectories = directories
	return s
}

func (s *Suite) WithCollector(collector Collector) *Suite {
	s.collector = collector
	return s
}

func (s *Suite) WithReporter(reporter Reporter) *Suite {
	s.reporter = reporter
	return s
}

func (s *Suite) WithLogger(logger *logrus.Logger) *Suite {
	s.logger = logger
	return s
}

// WithConsoleReporter replaces the progress printer. Pass nil to silence
// progress output entirely.
func (s *Suite) WithConsoleReporter(console *report.ConsoleReporter) *Suite {
	s.console = console
	return s
}

// RegisterStep registers a keyword agnostic step definition.
func (s *Suite) RegisterStep(pattern string, handler steps.Handler) *Suite {
	s.registry.Step(pattern, handler)
	return s
}

func (s *Suite) Given(pattern string, handler steps.Handler) *Suite {
	s.registry.Given(pattern, handler)
	return s
}

func (s *Suite) When(pattern string, handler steps.Handler) *Suite {
	s.registry.When(pattern, handler)
	return s
}

func (s *Suite) Then(pattern string, handler steps.Handler) *Suite {
	s.registry.Then(pattern, handler)
	return s
}

// Registry exposes the underlying step registry.
func (s *Suite) Registry() *steps.Registry {
	return s.registry
}

// Run executes the suite without extra tags; filters come only from the
// resolved options (pickle.yml overlaid with the environment).
func (s *Suite) Run() error {
	return s.RunWithTags()
}

// RunWithTags executes the suite. The given tags are added to the include
// set of the tag filter resolved from the environment.
func (s *Suite) RunWithTags(tags ...string) error {
	ctx := context.Background()

	options, err := config.Load()
	if err != nil {
		return err
	}

	filters, err := buildFilters(tags, options)
	if err != nil {
		return err
	}

	set, err := s.parseFeatures(options)
	if err != nil {
		return err
	}

	for _, registrationErr := range s.registry.RegistrationErrors() {
		s.logger.WithField("pattern", registrationErr.Pattern).Warn("invalid step definition")
	}

	if s.config != nil && s.config.BeforeAll != nil {
		if err := s.config.BeforeAll(ctx); err != nil {
			return err
		}
	}

	for _, feature := range set.Features {
		s.runFeature(ctx, feature, filters, set.LineFilters[feature.SourceFile])
	}

	var afterAllErr error
	if s.config != nil && s.config.AfterAll != nil {
		afterAllErr = s.config.AfterAll(ctx)
	}

	if s.console != nil {
		s.console.PrintSummary()
	}

	run := s.collector.BuildAggregate()

	if options.ReportEnabled {
		if err := s.reporter.Write(run, options.ReportPath); err != nil {
			s.logger.WithError(err).Error("could not write report")
		} else {
			s.logger.WithField("path", options.ReportPath).Info("report written")
		}
	}

	if !run.AllPassed() {
		executed := run.TotalScenarioCount() - run.SkippedCount()
		return errors.Join(
			fmt.Errorf("%d of %d scenarios failed", run.FailedCount(), executed),
			afterAllErr,
		)
	}
	return afterAllErr
}

type suiteFilters struct {
	tags       filter.TagFilter
	expression *filter.TagExpression
	names      *filter.ScenarioNameFilter
}

func buildFilters(tags []string, options config.Options) (suiteFilters, error) {
	filters := suiteFilters{
		tags: filter.NewTagFilter(append(append([]string(nil), tags...), options.Tags...), options.ExcludeTags),
	}

	if options.TagExpression != "" {
		expression, err := filter.ParseTagExpression(options.TagExpression)
		if err != nil {
			return suiteFilters{}, fmt.Errorf("invalid tag expression %q: %w", options.TagExpression, err)
		}
		filters.expression = expression
	}

	if len(options.ScenarioNames) > 0 {
		names := filter.NewScenarioNameFilter(options.ScenarioNames)
		filters.names = &names
	}

	return filters, nil
}

func (filters suiteFilters) allows(scenario *gherkin.Scenario, combinedTags []string) bool {
	if !filters.tags.Empty() && !filters.tags.Allows(combinedTags) {
		return false
	}
	if filters.expression != nil && !filters.expression.Allows(combinedTags) {
		return false
	}
	if filters.names != nil && !filters.names.Allows(scenario.Name) {
		return false
	}
	return true
}

func (s *Suite) parseFeatures(options config.Options) (*gherkin.PathSet, error) {
	specs := options.FeaturePaths
	if len(specs) == 0 {
		directories := s.featureDirectories
		if len(directories) == 0 {
			directories = []string{defaultFeaturesDirectory}
		}
		for _, directory := range directories {
			specs = append(specs, directory+"/")
		}
	}

	paths := make([]filter.FeaturePath, 0, len(specs))
	for _, spec := range specs {
		path, err := filter.ParseFeaturePath(spec, "")
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return gherkin.ParsePaths(paths)
}

func (s *Suite) runFeature(ctx context.Context, feature *gherkin.Feature, filters suiteFilters, lines []int) {
	expanded := gherkin.Expand(feature)
	lineFilter := filter.NewLineFilter(lines)

	if s.console != nil {
		s.console.FeatureStart(feature.Name)
	}

	scenarios := expanded.Scenarios()
	scenarioLines := make([]int, 0, len(scenarios))
	for _, scenario := range scenarios {
		scenarioLines = append(scenarioLines, scenario.Line)
	}

	for _, scenario := range scenarios {
		combined := append(append([]string(nil), feature.Tags...), scenario.Tags...)

		selected := filters.allows(scenario, combined)
		if selected && !lineFilter.Empty() {
			selected = lineFilter.Allows(scenarioLines, scenario.Line)
		}

		if !selected {
			s.collector.Record(models.ScenarioResult{
				Name:    scenario.Name,
				Passed:  true,
				Skipped: true,
				Tags:    scenario.Tags,
			}, feature.Name, feature.Tags, feature.SourceFile)
			if s.console != nil {
				s.console.ScenarioSkipped(scenario.Name)
			}
			s.logger.WithFields(logrus.Fields{
				"feature":  feature.Name,
				"scenario": scenario.Name,
			}).Debug("scenario excluded by filter")
			continue
		}

		result := s.runScenario(ctx, expanded, feature, scenario)
		s.collector.Record(result, feature.Name, feature.Tags, feature.SourceFile)

		if s.console != nil {
			s.console.ScenarioStart(scenario.Name)
			for _, step := range result.StepResults {
				s.console.Step(step)
			}
			s.console.ScenarioResult(result.Passed)
		}

		entry := s.logger.WithFields(logrus.Fields{
			"feature":  feature.Name,
			"scenario": scenario.Name,
			"duration": result.Duration,
		})
		if result.Passed {
			entry.Info("scenario passed")
		} else {
			entry.WithError(result.Err).Error("scenario failed")
		}
	}
}

// runScenario wraps the core run with the scenario level hooks.
func (s *Suite) runScenario(ctx context.Context, expanded *gherkin.Feature, feature *gherkin.Feature, scenario *gherkin.Scenario) models.ScenarioResult {
	if s.config != nil && s.config.BeforeScenario != nil {
		if err := s.config.BeforeScenario(ctx, scenario.Name); err != nil {
			return models.ScenarioResult{
				Name: scenario.Name,
				Tags: scenario.Tags,
				Err:  err,
			}
		}
	}

	result := RunScenario(ctx, s.registry, expanded.Background, scenario,
		WithFeatureInfo(feature.Name, feature.SourceFile),
		WithHooks(s.config),
	)

	if s.config != nil && s.config.AfterScenario != nil {
		s.config.AfterScenario(ctx, scenario.Name, result.Err)
	}
	return result
}
