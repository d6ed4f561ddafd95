package generator

import (
	"io"

	"github.com/dave/jennifer/jen"
)

const runnerPackage = "github.com/denizgursoy/pickle/pkg/runner"

type (
	// FunctionLocator names a function together with the package declaring it.
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string
	}

	// StepFunctionLocator binds a step pattern to its handler function.
	StepFunctionLocator struct {
		Pattern string
		*FunctionLocator
	}

	// Output is everything the source scan discovered, ready to be rendered
	// into a suite harness.
	Output struct {
		ConfigFunction *FunctionLocator
		StepFunctions  []*StepFunctionLocator
	}
)

// Generate renders a main package that builds a Suite, registers every
// discovered step function, and runs it.
func (o *Output) Generate(writer io.Writer) error {
	mainFile := jen.NewFile("main")

	functionBody := jen.Id("err").Op(":=").Qual(runnerPackage, "NewSuite").Call().Id(".").Line()

	if o.ConfigFunction != nil {
		functionBody.Id("WithConfigFunc").Call(jen.Qual(o.ConfigFunction.FullPackageName, o.ConfigFunction.FunctionName)).Id(".").Line()
	}

	for _, function := range o.StepFunctions {
		functionBody.Id("RegisterStep").Call(jen.Lit(function.Pattern), jen.Qual(function.FullPackageName, function.FunctionName)).Id(".").Line()
	}
	functionBody.Id("RunWithTags").Call().Line().Line()
	functionBody.If(jen.Id("err").Op("!=").Nil()).Block(
		jen.Qual("log", "Fatal").Call(jen.Id("err")),
	)

	mainFile.Func().Id("main").Params().Block(functionBody)

	_, err := writer.Write([]byte(mainFile.GoString()))

	return err
}
