package gherkin

import (
	"strings"
)

type parseMode int

const (
	modeIdle parseMode = iota
	modeFeature
	modeBackground
	modeScenario
	modeOutline
	modeExamples
)

const (
	featurePrefix  = "Feature:"
	backgroundPrefix = "Background:"
	outlinePrefix  = "Scenario Outline:"
	templatePrefix = "Scenario Template:"
	scenarioPrefix = "Scenario:"
	examplesPrefix = "Examples:"
	scenariosPrefix = "Scenarios:"

	docStringQuotes    = `"""`
	docStringBackticks = "```"
)

var stepPrefixes = []Keyword{Given, When, Then, And, But}

// Parse converts Gherkin source text into a Feature. The optional sourceFile
// identifies the origin in error messages and results.
func Parse(source string, sourceFile string) (*Feature, error) {
	p := &parser{path: sourceFile}

	source = strings.ReplaceAll(source, "\r\n", "\n")
	for number, line := range strings.Split(source, "\n") {
		if err := p.consume(strings.TrimSuffix(line, "\r"), number+1); err != nil {
			return nil, err
		}
	}

	return p.finish()
}

type parser struct {
	path    string
	mode    parseMode
	feature *Feature

	descriptionLines []string
	pendingTags      []string
	pendingRows      [][]string

	background *Background
	scenario   *Scenario
	outline    *ScenarioOutline

	examplesOpen bool
	examplesTags []string
	examplesRows [][]string
	examplesLine int

	docOpen   bool
	docIndent int
	docLines  []string
	docReturn parseMode
	docStart  int
}

// consume processes one raw source line. Classification order matters: doc
// string content wins over everything, then blanks and comments, tag lines,
// table rows, doc string delimiters, keywords, and finally feature
// description text.
func (p *parser) consume(line string, number int) error {
	trimmed := strings.TrimSpace(line)

	if p.docOpen {
		if trimmed == docStringQuotes || trimmed == docStringBackticks {
			p.closeDocString()
			return nil
		}
		p.docLines = append(p.docLines, stripIndent(line, p.docIndent))
		return nil
	}

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	if strings.HasPrefix(trimmed, "@") {
		for _, tag := range strings.Fields(trimmed) {
			p.pendingTags = append(p.pendingTags, strings.TrimPrefix(tag, "@"))
		}
		return nil
	}

	if strings.HasPrefix(trimmed, "|") {
		p.pendingRows = append(p.pendingRows, splitTableRow(trimmed))
		return nil
	}

	if trimmed == docStringQuotes || trimmed == docStringBackticks {
		p.docOpen = true
		p.docIndent = len(line) - len(strings.TrimLeft(line, " \t"))
		p.docLines = nil
		p.docReturn = p.mode
		p.docStart = number
		return nil
	}

	return p.dispatchKeyword(trimmed, number)
}

func (p *parser) dispatchKeyword(trimmed string, number int) error {
	switch {
	case strings.HasPrefix(trimmed, featurePrefix):
		if p.feature != nil {
			return nil
		}
		p.feature = &Feature{
			Name:       strings.TrimSpace(trimmed[len(featurePrefix):]),
			Tags:       p.takeTags(),
			SourceFile: p.path,
		}
		p.mode = modeFeature
		return nil

	case strings.HasPrefix(trimmed, backgroundPrefix):
		if p.feature == nil {
			return nil
		}
		p.flushRows()
		p.finalizeDefinition()
		if p.feature.Background != nil {
			return newParseError(ErrDuplicateBackground, p.path, number)
		}
		// A Background carries no tags; any accumulated ones are dropped.
		p.pendingTags = nil
		p.background = &Background{Line: number}
		p.mode = modeBackground
		return nil

	case strings.HasPrefix(trimmed, outlinePrefix), strings.HasPrefix(trimmed, templatePrefix):
		if p.feature == nil {
			return nil
		}
		p.flushRows()
		p.finalizeDefinition()
		name := trimmed[len(outlinePrefix):]
		if strings.HasPrefix(trimmed, templatePrefix) {
			name = trimmed[len(templatePrefix):]
		}
		p.outline = &ScenarioOutline{
			Name: strings.TrimSpace(name),
			Tags: p.takeTags(),
			Line: number,
		}
		p.mode = modeOutline
		return nil

	case strings.HasPrefix(trimmed, examplesPrefix), strings.HasPrefix(trimmed, scenariosPrefix):
		if p.outline == nil {
			return nil
		}
		p.flushRows()
		p.finalizeExamples()
		p.examplesOpen = true
		p.examplesTags = p.takeTags()
		p.examplesLine = number
		p.mode = modeExamples
		return nil

	case strings.HasPrefix(trimmed, scenarioPrefix):
		if p.feature == nil {
			return nil
		}
		p.flushRows()
		p.finalizeDefinition()
		p.scenario = &Scenario{
			Name: strings.TrimSpace(trimmed[len(scenarioPrefix):]),
			Tags: p.takeTags(),
			Line: number,
		}
		p.mode = modeScenario
		return nil
	}

	for _, keyword := range stepPrefixes {
		prefix := string(keyword) + " "
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		p.flushRows()
		step := Step{
			Keyword: keyword,
			Text:    strings.TrimSpace(trimmed[len(prefix):]),
			Line:    number,
		}
		p.appendStep(step)
		return nil
	}

	if p.mode == modeFeature {
		p.descriptionLines = append(p.descriptionLines, trimmed)
	}
	return nil
}

func (p *parser) appendStep(step Step) {
	switch p.mode {
	case modeBackground:
		p.background.Steps = append(p.background.Steps, step)
	case modeScenario:
		p.scenario.Steps = append(p.scenario.Steps, step)
	case modeOutline:
		p.outline.Steps = append(p.outline.Steps, step)
	case modeExamples:
		// A step after an Examples block closes the block and continues the
		// outline's step list.
		p.finalizeExamples()
		p.mode = modeOutline
		p.outline.Steps = append(p.outline.Steps, step)
	}
}

// flushRows hands accumulated table rows to their owner: the examples table
// accumulator, or the most recently appended step of the active scope. Rows
// with no owner are discarded.
func (p *parser) flushRows() {
	if len(p.pendingRows) == 0 {
		return
	}
	rows := p.pendingRows
	p.pendingRows = nil

	if p.mode == modeExamples {
		p.examplesRows = append(p.examplesRows, rows...)
		return
	}

	if steps := p.currentSteps(); len(steps) > 0 {
		steps[len(steps)-1].Table = &DataTable{Rows: rows}
	}
}

func (p *parser) currentSteps() []Step {
	switch p.mode {
	case modeBackground:
		if p.background != nil {
			return p.background.Steps
		}
	case modeScenario:
		if p.scenario != nil {
			return p.scenario.Steps
		}
	case modeOutline:
		if p.outline != nil {
			return p.outline.Steps
		}
	}
	return nil
}

// closeDocString attaches the buffered lines to the last step of the scope
// that was active when the doc string opened. The opening mode is tracked
// explicitly so intervening state resets cannot misattribute the text.
func (p *parser) closeDocString() {
	text := strings.Join(p.docLines, "\n")
	p.docOpen = false
	p.docLines = nil
	p.mode = p.docReturn

	if steps := p.currentSteps(); len(steps) > 0 {
		steps[len(steps)-1].DocString = &text
	}
}

func (p *parser) finalizeExamples() {
	if !p.examplesOpen {
		return
	}
	p.outline.Examples = append(p.outline.Examples, ExamplesTable{
		Tags:  p.examplesTags,
		Table: DataTable{Rows: p.examplesRows},
		Line:  p.examplesLine,
	})
	p.examplesOpen = false
	p.examplesTags = nil
	p.examplesRows = nil
	p.examplesLine = 0
}

func (p *parser) finalizeDefinition() {
	p.finalizeExamples()
	switch {
	case p.background != nil:
		p.feature.Background = p.background
		p.background = nil
	case p.scenario != nil:
		p.feature.Definitions = append(p.feature.Definitions, p.scenario)
		p.scenario = nil
	case p.outline != nil:
		p.feature.Definitions = append(p.feature.Definitions, p.outline)
		p.outline = nil
	}
}

func (p *parser) finish() (*Feature, error) {
	if p.docOpen {
		return nil, newParseError(ErrUnterminatedDocString, p.path, p.docStart)
	}
	if p.feature == nil {
		return nil, newParseError(ErrNoFeatureFound, p.path, 0)
	}

	p.flushRows()
	p.finalizeDefinition()
	p.feature.Description = strings.TrimSpace(strings.Join(p.descriptionLines, "\n"))

	return p.feature, nil
}

func (p *parser) takeTags() []string {
	tags := p.pendingTags
	p.pendingTags = nil
	return tags
}

// splitTableRow turns `| a | b |` into its trimmed cells. Empty cells are
// kept so column positions stay stable.
func splitTableRow(trimmed string) []string {
	row := strings.TrimPrefix(trimmed, "|")
	row = strings.TrimSuffix(row, "|")
	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// stripIndent removes the doc string delimiter's indent from a content line.
// Lines shorter than the indent are whitespace trimmed instead.
func stripIndent(line string, indent int) string {
	if len(line) >= indent {
		return line[indent:]
	}
	return strings.TrimSpace(line)
}
