// Package config resolves suite options from the environment and from an
// optional pickle.yml file. Environment variables always win over the file.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultReportPath = "pickle-report.html"
	DefaultConfigFile = "pickle.yml"
)

// Options is the resolved suite configuration.
type Options struct {
	Tags            []string `yaml:"tags"`
	ExcludeTags     []string `yaml:"exclude_tags"`
	TagExpression   string   `yaml:"tag_expression"`
	ScenarioNames   []string `yaml:"scenarios"`
	FeaturePaths    []string `yaml:"features"`
	StepDefinitions []string `yaml:"step_definitions"`
	ReportEnabled   bool     `yaml:"report"`
	ReportPath      string   `yaml:"report_path"`
}

// Load resolves options from DefaultConfigFile (when present) overlaid with
// the environment.
func Load() (Options, error) {
	options, err := LoadFile(DefaultConfigFile)
	if err != nil {
		return Options{}, err
	}
	return options.overlayEnv(), nil
}

// LoadFile reads a yaml options file. A missing file yields zero options.
func LoadFile(path string) (Options, error) {
	var options Options

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return options, nil
	}
	if err != nil {
		return options, err
	}
	if err := yaml.Unmarshal(data, &options); err != nil {
		return Options{}, err
	}
	return options, nil
}

// FromEnv resolves options from environment variables only.
func FromEnv() Options {
	return Options{}.overlayEnv()
}

func (o Options) overlayEnv() Options {
	if tags := commaSeparated(os.Getenv("CUCUMBER_TAGS")); len(tags) > 0 {
		o.Tags = tags
	}
	if tags := commaSeparated(os.Getenv("CUCUMBER_EXCLUDE_TAGS")); len(tags) > 0 {
		o.ExcludeTags = tags
	}
	if expression := strings.TrimSpace(os.Getenv("CUCUMBER_TAG_EXPRESSION")); expression != "" {
		o.TagExpression = expression
	}
	if names := commaSeparated(os.Getenv("CUCUMBER_SCENARIOS")); len(names) > 0 {
		o.ScenarioNames = names
	}
	if paths := spaceSeparated(os.Getenv("CUCUMBER_FEATURES")); len(paths) > 0 {
		o.FeaturePaths = paths
	}
	if definitions := commaSeparated(os.Getenv("CUCUMBER_STEP_DEFINITIONS")); len(definitions) > 0 {
		o.StepDefinitions = definitions
	}
	if _, enabled := os.LookupEnv("PICKLE_REPORT"); enabled {
		o.ReportEnabled = true
	}
	if path := strings.TrimSpace(os.Getenv("PICKLE_REPORT_PATH")); path != "" {
		o.ReportPath = path
	}
	if o.ReportPath == "" {
		o.ReportPath = DefaultReportPath
	}
	return o
}

func commaSeparated(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func spaceSeparated(value string) []string {
	return strings.Fields(value)
}
