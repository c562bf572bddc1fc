package main

import (
	"context"
	"os"

	"github.com/nikbrunner/readme/internal/printer"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		printer.Error(os.Stderr, err)
		os.Exit(1)
	}
}
