// Package generator renders the suite harness from scanned step functions.
package generator

import (
	"context"
	"os"
	"strings"
)

const Separator = ","

// DefaultOutputFile is where the generated harness is written.
const DefaultOutputFile = "pickle_main.go"

// StartGenerator scans every source directory for annotated functions and
// writes one harness per invocation into outputFile. An empty sources list
// scans the working directory.
func StartGenerator(ctx context.Context, codeParser GoCodeParser, sources []string, outputFile string) error {
	if len(sources) == 0 {
		directory, err := os.Getwd()
		if err != nil {
			return err
		}
		sources = []string{directory}
	}
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}

	merged := &Output{}
	for _, source := range sources {
		output, err := codeParser.ScanDirectoryRecursively(ctx, source)
		if err != nil {
			return err
		}
		if output.ConfigFunction != nil {
			merged.ConfigFunction = output.ConfigFunction
		}
		merged.StepFunctions = append(merged.StepFunctions, output.StepFunctions...)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	return merged.Generate(file)
}

// SplitSources turns the CLI's comma separated directory list into paths.
func SplitSources(flagValue string) []string {
	if strings.TrimSpace(flagValue) == "" {
		return nil
	}
	var sources []string
	for _, source := range strings.Split(flagValue, Separator) {
		source = strings.TrimSpace(source)
		if source != "" {
			sources = append(sources, source)
		}
	}
	return sources
}
