//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=generator
package generator

import "context"

type (
	// GoCodeParser discovers annotated step and config functions in a
	// directory tree of Go sources.
	GoCodeParser interface {
		ScanDirectoryRecursively(ctx context.Context, directory string) (*Output, error)
	}
)
