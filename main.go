package main

import (
	"os"

	"github.com/patternforge/skillsmith/cmd"
	"github.com/patternforge/skillsmith/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
