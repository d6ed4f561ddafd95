//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import "github.com/denizgursoy/pickle/pkg/models"

type (
	// Collector receives every scenario result of a suite run
	Collector interface {
		Record(result models.ScenarioResult, featureName string, featureTags []string, sourceFile string)
		BuildAggregate() models.TestRunResult
		Reset()
	}

	// Reporter renders an aggregated run result to a file
	Reporter interface {
		Write(run models.TestRunResult, path string) error
	}
)
