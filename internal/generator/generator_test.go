package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStartGenerator(t *testing.T) {
	t.Run("should scan every source and write the harness", func(t *testing.T) {
		controller := gomock.NewController(t)
		codeParser := NewMockGoCodeParser(controller)

		sources := []string{"/first", "/second"}
		codeParser.EXPECT().
			ScanDirectoryRecursively(gomock.Any(), "/first").
			Return(&Output{StepFunctions: []*StepFunctionLocator{{
				Pattern:         "^a$",
				FunctionLocator: &FunctionLocator{FullPackageName: "pkga", FunctionName: "A"},
			}}}, nil)
		codeParser.EXPECT().
			ScanDirectoryRecursively(gomock.Any(), "/second").
			Return(&Output{StepFunctions: []*StepFunctionLocator{{
				Pattern:         "^b$",
				FunctionLocator: &FunctionLocator{FullPackageName: "pkgb", FunctionName: "B"},
			}}}, nil)

		outputFile := filepath.Join(t.TempDir(), "pickle_main.go")
		err := StartGenerator(context.Background(), codeParser, sources, outputFile)

		require.Nil(t, err)
		content, readErr := os.ReadFile(outputFile)
		require.Nil(t, readErr)
		require.Contains(t, string(content), `RegisterStep("^a$", pkga.A)`)
		require.Contains(t, string(content), `RegisterStep("^b$", pkgb.B)`)
	})

	t.Run("should fall back to the working directory without sources", func(t *testing.T) {
		controller := gomock.NewController(t)
		codeParser := NewMockGoCodeParser(controller)

		wd, err := os.Getwd()
		require.Nil(t, err)
		codeParser.EXPECT().
			ScanDirectoryRecursively(gomock.Any(), wd).
			Return(&Output{}, nil)

		outputFile := filepath.Join(t.TempDir(), "pickle_main.go")
		require.Nil(t, StartGenerator(context.Background(), codeParser, nil, outputFile))
		require.FileExists(t, outputFile)
	})
}

func TestSplitSources(t *testing.T) {
	t.Run("should split on commas and drop blanks", func(t *testing.T) {
		require.Equal(t, []string{"/a", "/b"}, SplitSources(" /a , /b ,"))
		require.Nil(t, SplitSources("   "))
	})
}
