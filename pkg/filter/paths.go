package filter

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FeaturePath is a parsed feature path specification: an absolute path, the
// requested source lines, and whether the path names a directory.
type FeaturePath struct {
	Path        string
	Lines       []int
	IsDirectory bool
}

// ParseFeaturePath parses a `path[:n[:m...]]` specification. Trailing colon
// separated non-negative integer tokens are consumed as line numbers in
// declaration order; the remaining prefix is the path. Relative paths are
// resolved against base (the process working directory when base is empty).
// A trailing slash forces the directory flag even when the path does not
// exist; otherwise directory-ness comes from the filesystem.
func ParseFeaturePath(spec string, base string) (FeaturePath, error) {
	tokens := strings.Split(spec, ":")

	var lines []int
	end := len(tokens)
	for end > 1 {
		n, err := strconv.Atoi(tokens[end-1])
		if err != nil || n < 0 {
			break
		}
		lines = append(lines, n)
		end--
	}
	// Collected right to left; restore declaration order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	path := strings.Join(tokens[:end], ":")
	forcedDirectory := strings.HasSuffix(path, "/")

	if !filepath.IsAbs(path) {
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return FeaturePath{}, err
			}
			base = wd
		}
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	isDirectory := forcedDirectory
	if !isDirectory {
		if info, err := os.Stat(path); err == nil {
			isDirectory = info.IsDir()
		}
	}

	return FeaturePath{Path: path, Lines: lines, IsDirectory: isDirectory}, nil
}

// LineFilter selects scenarios by source line range matching.
type LineFilter struct {
	Lines []int
}

func NewLineFilter(lines []int) LineFilter {
	return LineFilter{Lines: lines}
}

func (f LineFilter) Empty() bool { return len(f.Lines) == 0 }

// Allows reports whether the scenario starting at scenarioLine is selected.
// Each requested line resolves to the greatest scenario line not exceeding
// it, so targeting a step or tag line inside a scenario block still selects
// the enclosing scenario.
func (f LineFilter) Allows(scenarioLines []int, scenarioLine int) bool {
	for _, requested := range f.Lines {
		if resolved, ok := ResolveLine(scenarioLines, requested); ok && resolved == scenarioLine {
			return true
		}
	}
	return false
}

// ResolveLine finds the greatest scenario line less than or equal to the
// requested line. The boolean is false when every scenario starts after it.
func ResolveLine(scenarioLines []int, requested int) (int, bool) {
	sorted := append([]int(nil), scenarioLines...)
	sort.Ints(sorted)

	resolved, found := 0, false
	for _, line := range sorted {
		if line > requested {
			break
		}
		resolved, found = line, true
	}
	return resolved, found
}
