package models

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("should group results by feature in first insertion order", func(t *testing.T) {
		collector := NewCollector()
		collector.Record(passedScenario("a1"), "Alpha", []string{"x"}, "alpha.feature")
		collector.Record(passedScenario("b1"), "Beta", nil, "beta.feature")
		collector.Record(failedScenario("a2"), "Alpha", []string{"x"}, "alpha.feature")

		run := collector.BuildAggregate()

		require.NotEmpty(t, run.RunID)
		require.Len(t, run.Features, 2)
		require.Equal(t, "Alpha", run.Features[0].Name)
		require.Equal(t, "alpha.feature", run.Features[0].SourceFile)
		require.Equal(t, []string{"x"}, run.Features[0].Tags)
		require.Len(t, run.Features[0].ScenarioResults, 2)
		require.Equal(t, "Beta", run.Features[1].Name)
	})

	t.Run("should start a fresh run on reset", func(t *testing.T) {
		collector := NewCollector()
		collector.Record(passedScenario("a"), "Alpha", nil, "")
		firstID := collector.BuildAggregate().RunID

		collector.Reset()
		run := collector.BuildAggregate()

		require.Empty(t, run.Features)
		require.NotEqual(t, firstID, run.RunID)
	})

	t.Run("should serialize concurrent records", func(t *testing.T) {
		collector := NewCollector()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				collector.Record(passedScenario(fmt.Sprintf("s%d", i)), "Feature", nil, "")
			}(i)
		}
		wg.Wait()

		run := collector.BuildAggregate()
		require.Len(t, run.Features, 1)
		require.Len(t, run.Features[0].ScenarioResults, 20)
	})
}
