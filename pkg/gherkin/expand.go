package gherkin

import (
	"fmt"
	"strings"
)

// Expand returns a feature whose scenario definitions are all concrete.
// Concrete scenarios pass through unchanged; each outline becomes one
// scenario per example row, in (table, row) declaration order, replacing the
// outline's slot.
func Expand(feature *Feature) *Feature {
	expanded := *feature
	expanded.Definitions = make([]ScenarioDefinition, 0, len(feature.Definitions))

	for _, definition := range feature.Definitions {
		switch d := definition.(type) {
		case *Scenario:
			expanded.Definitions = append(expanded.Definitions, d)
		case *ScenarioOutline:
			for _, scenario := range expandOutline(d) {
				expanded.Definitions = append(expanded.Definitions, scenario)
			}
		}
	}
	return &expanded
}

func expandOutline(outline *ScenarioOutline) []*Scenario {
	var scenarios []*Scenario

	for tableIndex, examples := range outline.Examples {
		header := examples.Table.Header()
		for rowIndex, row := range examples.Table.DataRows() {
			values := make(map[string]string, len(header))
			for i, name := range header {
				if i < len(row) {
					values[name] = row[i]
				}
			}

			name := fmt.Sprintf("%s [Row %d]", outline.Name, rowIndex+1)
			if len(outline.Examples) > 1 {
				name = fmt.Sprintf("%s [Examples %d, Row %d]", outline.Name, tableIndex+1, rowIndex+1)
			}

			tags := make([]string, 0, len(outline.Tags)+len(examples.Tags))
			tags = append(tags, outline.Tags...)
			tags = append(tags, examples.Tags...)

			scenarios = append(scenarios, &Scenario{
				Name:  name,
				Tags:  tags,
				Steps: substituteSteps(outline.Steps, values),
				Line:  outline.Line,
			})
		}
	}
	return scenarios
}

func substituteSteps(steps []Step, values map[string]string) []Step {
	out := make([]Step, len(steps))
	for i, step := range steps {
		out[i] = step
		out[i].Text = substitutePlaceholders(step.Text, values)

		if step.Table != nil {
			rows := make([][]string, len(step.Table.Rows))
			for r, row := range step.Table.Rows {
				cells := make([]string, len(row))
				for c, cell := range row {
					cells[c] = substitutePlaceholders(cell, values)
				}
				rows[r] = cells
			}
			out[i].Table = &DataTable{Rows: rows}
		}

		if step.DocString != nil {
			text := substitutePlaceholders(*step.DocString, values)
			out[i].DocString = &text
		}
	}
	return out
}

// substitutePlaceholders replaces whole <name> tokens in a single left to
// right scan. Placeholders inside replacement values are not re-expanded,
// and tokens without a matching header pass through untouched.
func substitutePlaceholders(text string, values map[string]string) string {
	var b strings.Builder

	for {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			b.WriteString(text)
			return b.String()
		}
		end := strings.IndexByte(text[open+1:], '>')
		if end < 0 {
			b.WriteString(text)
			return b.String()
		}
		end += open + 1

		name := text[open+1 : end]
		value, known := values[name]
		if !known {
			b.WriteString(text[:open+1])
			text = text[open+1:]
			continue
		}

		b.WriteString(text[:open])
		b.WriteString(value)
		text = text[end+1:]
	}
}
