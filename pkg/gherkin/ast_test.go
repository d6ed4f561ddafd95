package gherkin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataTable(t *testing.T) {
	t.Run("should expose header and data rows", func(t *testing.T) {
		table := &DataTable{Rows: [][]string{
			{"name", "role"},
			{"alice", "admin"},
			{"bob", "user"},
		}}

		require.Equal(t, []string{"name", "role"}, table.Header())
		require.Equal(t, [][]string{{"alice", "admin"}, {"bob", "user"}}, table.DataRows())
	})

	t.Run("should yield no data rows for a single row table", func(t *testing.T) {
		table := &DataTable{Rows: [][]string{{"only"}}}

		require.Equal(t, []string{"only"}, table.Header())
		require.Empty(t, table.DataRows())
	})

	t.Run("should build maps keyed by header cells", func(t *testing.T) {
		table := &DataTable{Rows: [][]string{
			{"name", "", "role"},
			{"alice", "ignored", "admin"},
		}}

		maps := table.Maps()

		require.Len(t, maps, 1)
		// The empty header column produces no mapping.
		require.Equal(t, map[string]string{"name": "alice", "role": "admin"}, maps[0])
	})

	t.Run("should tolerate short rows in maps", func(t *testing.T) {
		table := &DataTable{Rows: [][]string{
			{"a", "b"},
			{"1"},
		}}

		require.Equal(t, map[string]string{"a": "1"}, table.Maps()[0])
	})
}

func TestFeature_Scenarios(t *testing.T) {
	t.Run("should return concrete scenarios only", func(t *testing.T) {
		feature := &Feature{Definitions: []ScenarioDefinition{
			&Scenario{Name: "a", Line: 2},
			&ScenarioOutline{Name: "o", Line: 5},
			&Scenario{Name: "b", Line: 9},
		}}

		scenarios := feature.Scenarios()

		require.Len(t, scenarios, 2)
		require.Equal(t, "a", scenarios[0].Name)
		require.Equal(t, "b", scenarios[1].Name)
	})
}
