package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func passedScenario(name string) ScenarioResult {
	return ScenarioResult{
		Name:          name,
		Passed:        true,
		StepsExecuted: 2,
		StepResults: []StepResult{
			{Status: StatusPassed, Duration: time.Millisecond},
			{Status: StatusPassed, Duration: time.Millisecond},
		},
		Duration: 3 * time.Millisecond,
	}
}

func failedScenario(name string) ScenarioResult {
	return ScenarioResult{
		Name:          name,
		StepsExecuted: 1,
		StepResults: []StepResult{
			{Status: StatusPassed},
			{Status: StatusFailed, Error: "boom"},
			{Status: StatusSkipped},
		},
	}
}

func skippedScenario(name string) ScenarioResult {
	return ScenarioResult{Name: name, Passed: true, Skipped: true}
}

func TestFeatureResult_Counts(t *testing.T) {
	feature := FeatureResult{
		Name: "F",
		ScenarioResults: []ScenarioResult{
			passedScenario("a"),
			failedScenario("b"),
			skippedScenario("c"),
		},
	}

	t.Run("should count scenarios per status", func(t *testing.T) {
		require.Equal(t, 1, feature.PassedCount())
		require.Equal(t, 1, feature.FailedCount())
		require.Equal(t, 1, feature.SkippedCount())
	})

	t.Run("should add up to the total scenario count", func(t *testing.T) {
		total := feature.PassedCount() + feature.FailedCount() + feature.SkippedCount()
		require.Equal(t, len(feature.ScenarioResults), total)
	})

	t.Run("should count steps per status", func(t *testing.T) {
		require.Equal(t, 3, feature.StepCount(StatusPassed))
		require.Equal(t, 1, feature.StepCount(StatusFailed))
		require.Equal(t, 1, feature.StepCount(StatusSkipped))
		require.Zero(t, feature.StepCount(StatusUndefined))
	})

	t.Run("should not be all passed while a failure exists", func(t *testing.T) {
		require.False(t, feature.AllPassed())
	})

	t.Run("should be all passed when only skips remain", func(t *testing.T) {
		ok := FeatureResult{ScenarioResults: []ScenarioResult{
			passedScenario("a"),
			skippedScenario("b"),
		}}
		require.True(t, ok.AllPassed())
	})
}

func TestTestRunResult_Aggregates(t *testing.T) {
	run := TestRunResult{
		Features: []FeatureResult{
			{ScenarioResults: []ScenarioResult{passedScenario("a"), failedScenario("b")}},
			{ScenarioResults: []ScenarioResult{skippedScenario("c")}},
		},
		StartedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 6, 1, 10, 0, 2, 0, time.UTC),
	}

	t.Run("should sum scenario counts across features", func(t *testing.T) {
		require.Equal(t, 3, run.TotalScenarioCount())
		require.Equal(t, 1, run.PassedCount())
		require.Equal(t, 1, run.FailedCount())
		require.Equal(t, 1, run.SkippedCount())
	})

	t.Run("should sum step counts across features", func(t *testing.T) {
		require.Equal(t, 3, run.StepCount(StatusPassed))
		require.Equal(t, 1, run.StepCount(StatusFailed))
	})

	t.Run("should compute the run duration", func(t *testing.T) {
		require.Equal(t, 2*time.Second, run.Duration())
	})

	t.Run("should report all passed only without failures", func(t *testing.T) {
		require.False(t, run.AllPassed())
		require.True(t, (&TestRunResult{}).AllPassed())
	})
}
