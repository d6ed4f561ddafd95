package gherkin

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/denizgursoy/pickle/pkg/filter"
)

// ParseFile parses one feature file and stores the file's base name as the
// feature's source identifier.
func ParseFile(path string) (*Feature, error) {
	return parseFileAs(path, filepath.Base(path))
}

// ParseFileFullPath parses one feature file and stores the full path as the
// feature's source identifier.
func ParseFileFullPath(path string) (*Feature, error) {
	return parseFileAs(path, path)
}

func parseFileAs(path, sourceFile string) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), sourceFile)
}

// ParseDirectory recursively enumerates *.feature files under the directory,
// sorted lexicographically by base name, and parses each with its full path
// stored.
func ParseDirectory(directory string) ([]*Feature, error) {
	files, err := SearchFeatureFilesIn(directory)
	if err != nil {
		return nil, err
	}

	features := make([]*Feature, 0, len(files))
	for _, file := range files {
		feature, err := ParseFileFullPath(file)
		if err != nil {
			return nil, err
		}
		features = append(features, feature)
	}
	return features, nil
}

// SearchFeatureFilesIn walks a directory collecting every .feature file,
// ordered lexicographically by base name.
func SearchFeatureFilesIn(directory string) ([]string, error) {
	featureFiles := make([]string, 0)

	err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), FeatureExtension) {
			featureFiles = append(featureFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(featureFiles, func(i, j int) bool {
		return filepath.Base(featureFiles[i]) < filepath.Base(featureFiles[j])
	})
	return featureFiles, nil
}

// PathSet is the result of parsing a mixed list of feature path
// specifications: the parsed features plus the merged per-path line filters.
type PathSet struct {
	Features    []*Feature
	LineFilters map[string][]int
}

// ParsePaths parses files and directories given as FeaturePaths. Paths are
// de-duplicated and their requested line sets merged per path.
func ParsePaths(paths []filter.FeaturePath) (*PathSet, error) {
	set := &PathSet{LineFilters: make(map[string][]int)}
	seen := make(map[string]bool)

	for _, featurePath := range paths {
		mergeLines(set.LineFilters, featurePath.Path, featurePath.Lines)
		if seen[featurePath.Path] {
			continue
		}
		seen[featurePath.Path] = true

		if featurePath.IsDirectory {
			features, err := ParseDirectory(featurePath.Path)
			if err != nil {
				return nil, err
			}
			set.Features = append(set.Features, features...)
			continue
		}

		feature, err := ParseFileFullPath(featurePath.Path)
		if err != nil {
			return nil, err
		}
		set.Features = append(set.Features, feature)
	}

	return set, nil
}

func mergeLines(filters map[string][]int, path string, lines []int) {
	if len(lines) == 0 {
		return
	}
	existing := filters[path]
	for _, line := range lines {
		duplicate := false
		for _, have := range existing {
			if have == line {
				duplicate = true
				break
			}
		}
		if !duplicate {
			existing = append(existing, line)
		}
	}
	filters[path] = existing
}
