// Package stepscan discovers step and config functions by their comment
// annotations in Go source trees.
//
// A step function carries a doc comment line of the form
//
//	// pickle:step ^I have (\d+) apples$
//
// and a config function carries
//
//	// pickle:config
package stepscan

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/denizgursoy/pickle/internal/generator"
)

const (
	StepMarker   = "pickle:step"
	ConfigMarker = "pickle:config"
)

type Scanner struct {
	// importPathCache avoids re-reading go.mod for every file of a package.
	importPathCache map[string]string
}

func NewScanner() *Scanner {
	return &Scanner{importPathCache: make(map[string]string)}
}

// ScanDirectoryRecursively parses every Go file under the directory and
// collects annotated functions in a stable file order.
func (s *Scanner) ScanDirectoryRecursively(ctx context.Context, directory string) (*generator.Output, error) {
	files, err := goFilesIn(directory)
	if err != nil {
		return nil, err
	}

	output := &generator.Output{StepFunctions: make([]*generator.StepFunctionLocator, 0)}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.scanFile(file, output); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func (s *Scanner) scanFile(path string, output *generator.Output) error {
	node, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ParseComments)
	if err != nil {
		return err
	}

	for _, declaration := range node.Decls {
		function, ok := declaration.(*ast.FuncDecl)
		if !ok || function.Doc == nil || function.Recv != nil {
			continue
		}

		pattern, isStep := stepAnnotation(function.Doc)
		isConfig := configAnnotation(function.Doc)
		if !isStep && !isConfig {
			continue
		}
		if !function.Name.IsExported() {
			return fmt.Errorf("annotated function %s in %s must be exported", function.Name.Name, path)
		}

		importPath, err := s.importPathOf(filepath.Dir(path))
		if err != nil {
			return err
		}
		locator := &generator.FunctionLocator{
			FullPackageName: importPath,
			FunctionName:    function.Name.Name,
		}

		if isConfig {
			output.ConfigFunction = locator
			continue
		}
		output.StepFunctions = append(output.StepFunctions, &generator.StepFunctionLocator{
			Pattern:         pattern,
			FunctionLocator: locator,
		})
	}
	return nil
}

// stepAnnotation extracts the pattern from a pickle:step comment line.
// The pattern may be wrapped in backticks.
func stepAnnotation(doc *ast.CommentGroup) (string, bool) {
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, StepMarker) {
			continue
		}
		pattern := strings.TrimSpace(strings.TrimPrefix(line, StepMarker))
		pattern = strings.Trim(pattern, "`")
		if pattern != "" {
			return pattern, true
		}
	}
	return "", false
}

func configAnnotation(doc *ast.CommentGroup) bool {
	for _, line := range strings.Split(doc.Text(), "\n") {
		if strings.TrimSpace(line) == ConfigMarker {
			return true
		}
	}
	return false
}

// goFilesIn lists the non-test Go files under the directory, sorted so scan
// results are deterministic. Hidden, vendor and testdata directories are
// skipped.
func goFilesIn(directory string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != directory && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// importPathOf computes the import path of a directory by combining the
// module path of the enclosing go.mod with the relative directory.
func (s *Scanner) importPathOf(directory string) (string, error) {
	if cached, ok := s.importPathCache[directory]; ok {
		return cached, nil
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		goModPath := filepath.Join(current, "go.mod")
		data, readErr := os.ReadFile(goModPath)
		if readErr == nil {
			parsed, parseErr := modfile.Parse(goModPath, data, nil)
			if parseErr != nil {
				return "", fmt.Errorf("cannot parse go.mod: %w", parseErr)
			}

			importPath := parsed.Module.Mod.Path
			if rel, relErr := filepath.Rel(current, absDir); relErr == nil && rel != "." {
				importPath += "/" + filepath.ToSlash(rel)
			}
			s.importPathCache[directory] = importPath
			return importPath, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("go.mod not found in any parent of %s", directory)
		}
		current = parent
	}
}
