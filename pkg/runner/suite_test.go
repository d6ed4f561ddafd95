package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/pickle/pkg/models"
	"github.com/denizgursoy/pickle/pkg/steps"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeSuiteFeature(t *testing.T, dir, name, source string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
}

func newQuietSuite() *Suite {
	return NewSuite().
		WithLogger(quietLogger()).
		WithConsoleReporter(nil)
}

func TestSuite_Run(t *testing.T) {
	t.Run("should run every scenario of the configured directory", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "math.feature", `Feature: Math
  Scenario: Add
    Given I have 5
    When I add 3
    Then I get 8
`)

		counter := 0
		collector := models.NewCollector()
		suite := newQuietSuite().
			WithCollector(collector).
			WithFeaturesDirectories(dir).
			Given(`I have (\d+)`, func(ctx context.Context, m steps.StepMatch) error {
				counter, _ = m.Int(0)
				return nil
			}).
			When(`I add (\d+)`, func(ctx context.Context, m steps.StepMatch) error {
				n, _ := m.Int(0)
				counter += n
				return nil
			}).
			Then(`I get (\d+)`, func(ctx context.Context, m steps.StepMatch) error {
				n, _ := m.Int(0)
				if counter != n {
					return fmt.Errorf("expected %d but got %d", n, counter)
				}
				return nil
			})

		require.NoError(t, suite.Run())

		run := collector.BuildAggregate()
		require.Equal(t, 1, run.TotalScenarioCount())
		require.Equal(t, 1, run.PassedCount())
	})

	t.Run("should report failures through the returned error", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "fail.feature", `Feature: F
  Scenario: S
    Given boom
`)

		suite := newQuietSuite().
			WithFeaturesDirectories(dir).
			RegisterStep(`boom`, func(ctx context.Context, m steps.StepMatch) error {
				return fmt.Errorf("exploded")
			})

		err := suite.Run()

		require.Error(t, err)
		require.Contains(t, err.Error(), "1 of 1 scenarios failed")
	})

	t.Run("should record filtered scenarios as skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "tags.feature", `Feature: F
  @smoke
  Scenario: S1
    Given a
  @wip
  Scenario: S2
    Given a
  @smoke @wip
  Scenario: S3
    Given a
`)
		t.Setenv("CUCUMBER_EXCLUDE_TAGS", "wip")

		collector := models.NewCollector()
		suite := newQuietSuite().
			WithCollector(collector).
			WithFeaturesDirectories(dir).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error { return nil })

		require.NoError(t, suite.RunWithTags("smoke"))

		run := collector.BuildAggregate()
		require.Equal(t, 3, run.TotalScenarioCount())
		require.Equal(t, 1, run.PassedCount())
		require.Equal(t, 2, run.SkippedCount())

		results := run.Features[0].ScenarioResults
		require.Equal(t, "S1", results[0].Name)
		require.False(t, results[0].Skipped)
		require.True(t, results[1].Skipped)
		require.True(t, results[2].Skipped)
	})

	t.Run("should write the report when enabled by the environment", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "ok.feature", "Feature: F\n  Scenario: S\n    Given a\n")

		reportPath := filepath.Join(t.TempDir(), "out", "report.html")
		t.Setenv("PICKLE_REPORT", "1")
		t.Setenv("PICKLE_REPORT_PATH", reportPath)

		suite := newQuietSuite().
			WithFeaturesDirectories(dir).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error { return nil })

		require.NoError(t, suite.Run())

		data, err := os.ReadFile(reportPath)
		require.NoError(t, err)
		require.Contains(t, string(data), "Pickle Test Report")
	})

	t.Run("should resolve feature path specs from the environment", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "one.feature", "Feature: One\n  Scenario: S\n    Given a\n")
		t.Setenv("CUCUMBER_FEATURES", filepath.Join(dir, "one.feature"))

		collector := models.NewCollector()
		suite := newQuietSuite().
			WithCollector(collector).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error { return nil })

		require.NoError(t, suite.Run())
		aggregate := collector.BuildAggregate()
		require.Equal(t, 1, aggregate.TotalScenarioCount())
	})

	t.Run("should select scenarios by line filter specs", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "lines.feature", `Feature: F
  Scenario: First
    Given a
  Scenario: Second
    Given a
`)
		// Line 5 is inside the second scenario's block.
		t.Setenv("CUCUMBER_FEATURES", filepath.Join(dir, "lines.feature")+":5")

		collector := models.NewCollector()
		suite := newQuietSuite().
			WithCollector(collector).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error { return nil })

		require.NoError(t, suite.Run())

		results := collector.BuildAggregate().Features[0].ScenarioResults
		require.Len(t, results, 2)
		require.True(t, results[0].Skipped)
		require.Equal(t, "Second", results[1].Name)
		require.False(t, results[1].Skipped)
	})

	t.Run("should run lifecycle hooks in order", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "ok.feature", "Feature: F\n  Scenario: S\n    Given a\n")

		var calls []string
		suite := newQuietSuite().
			WithFeaturesDirectories(dir).
			WithConfigFunc(func() *models.Config {
				return &models.Config{
					BeforeAll: func(ctx context.Context) error {
						calls = append(calls, "before-all")
						return nil
					},
					AfterAll: func(ctx context.Context) error {
						calls = append(calls, "after-all")
						return nil
					},
					BeforeScenario: func(ctx context.Context, name string) error {
						calls = append(calls, "before-scenario:"+name)
						return nil
					},
					AfterScenario: func(ctx context.Context, name string, err error) {
						calls = append(calls, "after-scenario:"+name)
					},
				}
			}).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error {
				calls = append(calls, "step")
				return nil
			})

		require.NoError(t, suite.Run())
		require.Equal(t, []string{
			"before-all",
			"before-scenario:S",
			"step",
			"after-scenario:S",
			"after-all",
		}, calls)
	})

	t.Run("should hand every result to the collector interface", func(t *testing.T) {
		dir := t.TempDir()
		writeSuiteFeature(t, dir, "two.feature", `Feature: F
  Scenario: S1
    Given a
  Scenario: S2
    Given a
`)

		controller := gomock.NewController(t)
		collector := NewMockCollector(controller)
		collector.EXPECT().
			Record(gomock.Any(), "F", gomock.Any(), gomock.Any()).
			Times(2)
		collector.EXPECT().
			BuildAggregate().
			Return(models.TestRunResult{})

		suite := newQuietSuite().
			WithCollector(collector).
			WithFeaturesDirectories(dir).
			RegisterStep(`a`, func(ctx context.Context, m steps.StepMatch) error { return nil })

		require.NoError(t, suite.Run())
	})
}
