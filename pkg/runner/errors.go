package runner

import (
	"fmt"
	"strings"

	"github.com/denizgursoy/pickle/pkg/gherkin"
	"github.com/denizgursoy/pickle/pkg/steps"
)

// UndefinedStepError reports a step no definition matched.
type UndefinedStepError struct {
	Step        gherkin.Step
	FeatureName string
	SourceFile  string
}

func (e *UndefinedStepError) Error() string {
	message := fmt.Sprintf("Undefined step at line %d: %s %s", e.Step.Line, e.Step.Keyword, e.Step.Text)
	if origin := joinOrigin(e.SourceFile, e.FeatureName); origin != "" {
		message += " (" + origin + ")"
	}
	return message
}

// StepFailedError wraps the error a handler returned together with the
// step's identifying context.
type StepFailedError struct {
	Step         gherkin.Step
	FeatureName  string
	ScenarioName string
	Err          error

	// MatchLocs carries the capture group offsets of the failed step when a
	// definition did match, for parameter highlighting in reports.
	MatchLocs []int
}

func (e *StepFailedError) Error() string {
	if e.ScenarioName != "" {
		return fmt.Sprintf("Step failed at line %d in '%s': %s %s — %v",
			e.Step.Line, e.ScenarioName, e.Step.Keyword, e.Step.Text, e.Err)
	}
	return fmt.Sprintf("Step failed at line %d: %s %s — %v",
		e.Step.Line, e.Step.Keyword, e.Step.Text, e.Err)
}

func (e *StepFailedError) Unwrap() error { return e.Err }

// invalidDefinitionsError enumerates every invalid pattern recorded on the
// registry. It is surfaced before any step of a scenario executes.
func invalidDefinitionsError(errs []steps.RegistrationError) error {
	items := make([]string, 0, len(errs))
	for _, err := range errs {
		items = append(items, err.Error())
	}
	return fmt.Errorf("invalid step definitions: %s", strings.Join(items, "; "))
}

func joinOrigin(sourceFile, featureName string) string {
	switch {
	case sourceFile != "" && featureName != "":
		return sourceFile + " / " + featureName
	case sourceFile != "":
		return sourceFile
	case featureName != "":
		return featureName
	}
	return ""
}
