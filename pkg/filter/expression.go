package filter

import (
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
)

// TagExpression filters scenarios with a Cucumber boolean tag expression
// such as `@smoke and not @wip`.
type TagExpression struct {
	expression tagexpressions.Evaluatable
}

func ParseTagExpression(source string) (*TagExpression, error) {
	expression, err := tagexpressions.Parse(source)
	if err != nil {
		return nil, err
	}
	return &TagExpression{expression: expression}, nil
}

// Allows evaluates the expression against the scenario's tags. Tags are
// offered both bare and @-prefixed so expressions may be written either way.
func (e *TagExpression) Allows(tags []string) bool {
	variables := make([]string, 0, len(tags)*2)
	for _, tag := range tags {
		tag = normalizeTag(tag)
		variables = append(variables, tag, "@"+tag)
	}
	return e.expression.Evaluate(variables)
}
