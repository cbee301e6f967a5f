// Package main provides the pds-generator CLI.
//
// pds-generator compiles versioned pds schemas into Go packages: one package
// per schema version with migrations between neighbours, an entity dispatch
// table per schema, and the value dispatch table of the pds runtime.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitFailure     = 1
	exitDiagnostics = 2
)

// errDiagnostics reports that check found errors; they are already printed.
var errDiagnostics = errors.New("schema check failed")

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, errDiagnostics) {
			os.Exit(exitDiagnostics)
		}

		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitFailure)
	}
}
