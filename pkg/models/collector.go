package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Collector is the shared, mutex guarded result log of a run. Scenario
// results are grouped by feature while preserving the first insertion order
// of each feature and the insertion order of scenarios within it.
type Collector struct {
	mu       sync.Mutex
	runID    string
	started  time.Time
	order    []string
	features map[string]*FeatureResult
}

func NewCollector() *Collector {
	return &Collector{
		runID:    uuid.NewString(),
		started:  time.Now(),
		features: make(map[string]*FeatureResult),
	}
}

// Record appends one scenario result under its feature.
func (c *Collector) Record(result ScenarioResult, featureName string, featureTags []string, sourceFile string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	feature, ok := c.features[featureName]
	if !ok {
		feature = &FeatureResult{
			Name:       featureName,
			SourceFile: sourceFile,
			Tags:       featureTags,
		}
		c.features[featureName] = feature
		c.order = append(c.order, featureName)
	}

	feature.ScenarioResults = append(feature.ScenarioResults, result)
	feature.Duration += result.Duration
}

// BuildAggregate snapshots the collected results into a TestRunResult.
func (c *Collector) BuildAggregate() TestRunResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	run := TestRunResult{
		RunID:      c.runID,
		StartedAt:  c.started,
		FinishedAt: time.Now(),
	}
	for _, name := range c.order {
		run.Features = append(run.Features, *c.features[name])
	}
	return run
}

// Reset discards everything collected and starts a fresh run.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runID = uuid.NewString()
	c.started = time.Now()
	c.order = nil
	c.features = make(map[string]*FeatureResult)
}
