// Package steps keeps the catalogue of step definitions and matches parsed
// steps against it.
package steps

import (
	"context"
	"regexp"

	"github.com/denizgursoy/pickle/pkg/gherkin"
)

// Handler is a user written step implementation. It receives the captures
// and payloads of the matched step and may block on I/O; the runner waits
// for it to return.
type Handler func(ctx context.Context, match StepMatch) error

// StepMatch carries the ordered capture groups of the matched pattern plus
// the step's attached payloads, passed through verbatim.
type StepMatch struct {
	Captures  []string
	Table     *gherkin.DataTable
	DocString *string

	// MatchLocs holds pairs of [start, end] byte offsets for each capture
	// group within the step text (same format as
	// regexp.FindStringSubmatchIndex, minus the full-match pair). Used for
	// parameter highlighting in reports.
	MatchLocs []int
}

type definition struct {
	keyword string
	pattern string
	regex   *regexp.Regexp
	handler Handler
}

// Registry is an ordered catalogue of (anchored pattern, handler) pairs.
// Registration is not safe for concurrent use; once registration is done,
// concurrent Match calls are safe because matching never mutates state.
type Registry struct {
	definitions []definition
	invalid     []RegistrationError
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Given registers a handler for the pattern. The keyword is advisory only;
// it never participates in matching.
func (r *Registry) Given(pattern string, handler Handler) { r.register("Given", pattern, handler) }

// When registers a handler for the pattern.
func (r *Registry) When(pattern string, handler Handler) { r.register("When", pattern, handler) }

// Then registers a handler for the pattern.
func (r *Registry) Then(pattern string, handler Handler) { r.register("Then", pattern, handler) }

// Step registers a keyword agnostic handler for the pattern.
func (r *Registry) Step(pattern string, handler Handler) { r.register("Step", pattern, handler) }

// register anchors the pattern to the full step text before compiling. An
// invalid pattern is recorded instead of aborting; callers gate on
// RegistrationErrors before executing scenarios.
func (r *Registry) register(keyword, pattern string, handler Handler) {
	regex, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		r.invalid = append(r.invalid, RegistrationError{Pattern: pattern, Err: err})
		return
	}
	r.definitions = append(r.definitions, definition{
		keyword: keyword,
		pattern: pattern,
		regex:   regex,
		handler: handler,
	})
}

// Reset clears the catalogue and the recorded registration errors.
func (r *Registry) Reset() {
	r.definitions = nil
	r.invalid = nil
}

// Count returns the number of successfully compiled definitions.
func (r *Registry) Count() int {
	return len(r.definitions)
}

// RegistrationErrors returns every invalid pattern recorded so far.
func (r *Registry) RegistrationErrors() []RegistrationError {
	return r.invalid
}

// Match attempts a full string match of every definition against the step
// text. Zero matches return ok false. Exactly one match returns its handler
// and a StepMatch. Two or more matches fail with an AmbiguousStepError; the
// registry never silently picks one.
func (r *Registry) Match(step gherkin.Step) (Handler, StepMatch, bool, error) {
	var (
		matched  int
		handler  Handler
		captures []string
		locs     []int
	)

	for _, def := range r.definitions {
		groups := def.regex.FindStringSubmatch(step.Text)
		if groups == nil {
			continue
		}
		matched++
		if matched == 1 {
			handler = def.handler
			captures = groups[1:]
			if index := def.regex.FindStringSubmatchIndex(step.Text); len(index) > 2 {
				locs = index[2:]
			}
		}
	}

	switch {
	case matched == 0:
		return nil, StepMatch{}, false, nil
	case matched > 1:
		return nil, StepMatch{}, false, &AmbiguousStepError{Text: step.Text, Count: matched}
	}

	return handler, StepMatch{
		Captures:  captures,
		Table:     step.Table,
		DocString: step.DocString,
		MatchLocs: locs,
	}, true, nil
}
