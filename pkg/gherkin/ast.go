package gherkin

const FeatureExtension = ".feature"

// Keyword is the step keyword as written in the source.
type Keyword string

const (
	Given Keyword = "Given"
	When  Keyword = "When"
	Then  Keyword = "Then"
	And   Keyword = "And"
	But   Keyword = "But"
)

type (
	// Feature is the top level container parsed from one source.
	Feature struct {
		Name        string
		Description string
		Tags        []string
		Background  *Background
		Definitions []ScenarioDefinition
		SourceFile  string
	}

	// Background prefixes every scenario of its feature. A feature has at
	// most one.
	Background struct {
		Steps []Step
		Line  int
	}

	Scenario struct {
		Name  string
		Tags  []string
		Steps []Step
		Line  int
	}

	// ScenarioOutline is a templated scenario whose steps contain
	// <placeholder> tokens resolved against its examples tables.
	ScenarioOutline struct {
		Name     string
		Tags     []string
		Steps    []Step
		Examples []ExamplesTable
		Line     int
	}

	Step struct {
		Keyword   Keyword
		Text      string
		Table     *DataTable
		DocString *string
		Line      int
	}

	// DataTable is a pipe delimited grid attached to a step. The first row
	// is the header by convention.
	DataTable struct {
		Rows [][]string
	}

	// ExamplesTable holds one Examples block of an outline.
	ExamplesTable struct {
		Tags  []string
		Table DataTable
		Line  int
	}
)

// ScenarioDefinition is either a *Scenario or a *ScenarioOutline.
type ScenarioDefinition interface {
	SourceLine() int
	DefinitionName() string
}

func (s *Scenario) SourceLine() int            { return s.Line }
func (s *Scenario) DefinitionName() string     { return s.Name }
func (o *ScenarioOutline) SourceLine() int     { return o.Line }
func (o *ScenarioOutline) DefinitionName() string { return o.Name }

// Header returns the first row, or nil for an empty table.
func (t *DataTable) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns every row past the header. A single row table yields an
// empty view.
func (t *DataTable) DataRows() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Maps returns one map per data row keyed by the header cells. Columns with
// an empty header cell are left out.
func (t *DataTable) Maps() []map[string]string {
	header := t.Header()
	rows := t.DataRows()
	if header == nil || rows == nil {
		return nil
	}

	maps := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string)
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			m[name] = row[i]
		}
		maps = append(maps, m)
	}
	return maps
}

// Scenarios returns the concrete scenarios of a feature, ignoring outlines.
// Call Expand first to resolve outlines into concrete scenarios.
func (f *Feature) Scenarios() []*Scenario {
	scenarios := make([]*Scenario, 0, len(f.Definitions))
	for _, definition := range f.Definitions {
		if scenario, ok := definition.(*Scenario); ok {
			scenarios = append(scenarios, scenario)
		}
	}
	return scenarios
}
