package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/denizgursoy/pickle/pkg/models"
)

// ANSI color codes
const (
	colorReset    = "\033[0m"
	colorGreen    = "\033[32m"
	colorRed      = "\033[31m"
	colorYellow   = "\033[33m"
	colorMagenta  = "\033[35m"
	colorCyan     = "\033[36m"
	colorBold     = "\033[1m"
	colorStepText = "\033[38;2;187;181;41m"  // IntelliJ Cucumber yellow (#BBB529)
	colorMatchGrp = "\033[38;2;104;151;187m" // IntelliJ Cucumber param blue (#6897BB)
)

// Symbols for step status
const (
	symbolPass      = "✓"
	symbolFail      = "✗"
	symbolSkip      = "-"
	symbolUndefined = "?"
)

// ConsoleSummary tracks execution statistics for the console output.
type ConsoleSummary struct {
	ScenariosTotal   int
	ScenariosPassed  int
	ScenariosFailed  int
	ScenariosSkipped int
	StepsTotal       int
	StepsPassed      int
	StepsFailed      int
	StepsSkipped     int
	StepsUndefined   int
}

// ConsoleReporter prints colored BDD progress output. It renders feature and
// scenario headers, one line per step with a status symbol, and a final
// summary.
type ConsoleReporter struct {
	out       io.Writer
	useColors bool
	mu        sync.Mutex
	summary   ConsoleSummary
}

// NewConsoleReporter creates a reporter that prints to stdout.
func NewConsoleReporter(useColors bool) *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout, useColors: useColors}
}

// NewConsoleReporterTo creates a reporter printing to the given writer.
func NewConsoleReporterTo(out io.Writer, useColors bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, useColors: useColors}
}

func (r *ConsoleReporter) writeln(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *ConsoleReporter) color(c, s string) string {
	if r.useColors {
		return c + s + colorReset
	}
	return s
}

// FeatureStart prints the feature header.
func (r *ConsoleReporter) FeatureStart(name string) {
	r.writeln("")
	r.writeln(r.color(colorCyan, "Feature:") + " " + r.color(colorBold, name))
}

// ScenarioStart prints the scenario header.
func (r *ConsoleReporter) ScenarioStart(name string) {
	r.writeln("")
	r.writeln("  " + r.color(colorCyan, "Scenario:") + " " + r.color(colorBold, name))
}

// ScenarioSkipped prints a filtered-out scenario.
func (r *ConsoleReporter) ScenarioSkipped(name string) {
	r.writeln("")
	r.writeln("  " + r.color(colorCyan, "Scenario:") + " " + r.color(colorBold, name) +
		" " + r.color(colorYellow, "(excluded by filter)"))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.ScenariosTotal++
	r.summary.ScenariosSkipped++
}

// Step prints one executed step line based on its recorded result and folds
// it into the summary.
func (r *ConsoleReporter) Step(step models.StepResult) {
	var symbol string
	switch step.Status {
	case models.StatusPassed:
		symbol = r.color(colorGreen, symbolPass)
	case models.StatusFailed:
		symbol = r.color(colorRed, symbolFail)
	case models.StatusSkipped:
		symbol = r.color(colorYellow, symbolSkip)
	case models.StatusUndefined:
		symbol = r.color(colorMagenta, symbolUndefined)
	}

	locs := step.MatchLocs
	if step.Status == models.StatusSkipped {
		locs = nil
	}
	line := fmt.Sprintf("    %s%s", r.color(colorCyan, step.Keyword+" "), r.colorizeStepText(step.Text, locs))
	r.writeln(fmt.Sprintf("%-60s %s", line, symbol))

	if step.Status == models.StatusFailed && step.Error != "" {
		for _, errLine := range strings.Split(step.Error, "\n") {
			r.writeln(r.color(colorRed, "      "+errLine))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.StepsTotal++
	switch step.Status {
	case models.StatusPassed:
		r.summary.StepsPassed++
	case models.StatusFailed:
		r.summary.StepsFailed++
	case models.StatusSkipped:
		r.summary.StepsSkipped++
	case models.StatusUndefined:
		r.summary.StepsUndefined++
	}
}

// ScenarioResult folds a finished scenario into the summary.
func (r *ConsoleReporter) ScenarioResult(passed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.ScenariosTotal++
	if passed {
		r.summary.ScenariosPassed++
	} else {
		r.summary.ScenariosFailed++
	}
}

// colorizeStepText applies the step-text yellow to the entire text, but
// overrides capture-group regions with the match-group blue when matchLocs
// is non-nil.
func (r *ConsoleReporter) colorizeStepText(text string, matchLocs []int) string {
	if !r.useColors || len(matchLocs) < 2 {
		return r.color(colorStepText, text)
	}

	var b strings.Builder
	prev := 0
	for i := 0; i+1 < len(matchLocs); i += 2 {
		start, end := matchLocs[i], matchLocs[i+1]
		if start < 0 || end < 0 || start > len(text) || end > len(text) || start >= end {
			continue
		}
		if start > prev {
			b.WriteString(colorStepText)
			b.WriteString(text[prev:start])
			b.WriteString(colorReset)
		}
		b.WriteString(colorMatchGrp)
		b.WriteString(colorBold)
		b.WriteString(text[start:end])
		b.WriteString(colorReset)
		prev = end
	}
	if prev < len(text) {
		b.WriteString(colorStepText)
		b.WriteString(text[prev:])
		b.WriteString(colorReset)
	}
	return b.String()
}

// Summary returns the current statistics.
func (r *ConsoleReporter) Summary() ConsoleSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// PrintSummary prints the final test summary.
func (r *ConsoleReporter) PrintSummary() {
	r.mu.Lock()
	summary := r.summary
	r.mu.Unlock()

	r.writeln("")

	scenarioLine := fmt.Sprintf("%d scenario(s)", summary.ScenariosTotal)
	if parts := r.countParts(summary.ScenariosPassed, summary.ScenariosFailed, summary.ScenariosSkipped, 0); len(parts) > 0 {
		scenarioLine += " (" + strings.Join(parts, ", ") + ")"
	}
	r.writeln(scenarioLine)

	stepLine := fmt.Sprintf("%d step(s)", summary.StepsTotal)
	if parts := r.countParts(summary.StepsPassed, summary.StepsFailed, summary.StepsSkipped, summary.StepsUndefined); len(parts) > 0 {
		stepLine += " (" + strings.Join(parts, ", ") + ")"
	}
	r.writeln(stepLine)
}

func (r *ConsoleReporter) countParts(passed, failed, skipped, undefined int) []string {
	parts := []string{}
	if passed > 0 {
		parts = append(parts, r.color(colorGreen, fmt.Sprintf("%d passed", passed)))
	}
	if failed > 0 {
		parts = append(parts, r.color(colorRed, fmt.Sprintf("%d failed", failed)))
	}
	if skipped > 0 {
		parts = append(parts, r.color(colorYellow, fmt.Sprintf("%d skipped", skipped)))
	}
	if undefined > 0 {
		parts = append(parts, r.color(colorMagenta, fmt.Sprintf("%d undefined", undefined)))
	}
	return parts
}
