package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/denizgursoy/pickle/internal/generator"
	"github.com/denizgursoy/pickle/internal/stepscan"
)

func main() {
	codeFlag := flag.String("code", "", "directories to search for step functions separated by comma")
	outputFlag := flag.String("output", generator.DefaultOutputFile, "generated harness file name")
	flag.Parse()

	sources := generator.SplitSources(*codeFlag)

	err := generator.StartGenerator(context.Background(), stepscan.NewScanner(), sources, *outputFlag)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate suite harness")
	}
}
