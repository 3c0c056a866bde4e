// Command hvacdiag computes refrigeration cycle states and diagnoses faults
// from HVAC/R service readings, from files or as an HTTP service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Exit codes.
const (
	exitError   = 1
	exitReading = 2
	exitCatalog = 3
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates bad readings from bad catalogs and everything else.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidCatalog):
		return exitCatalog
	case errors.Is(err, types.ErrIncompleteReading),
		errors.Is(err, types.ErrInvalidReading),
		errors.Is(err, types.ErrUnknownRefrigerant),
		errors.Is(err, types.ErrOutOfRange):
		return exitReading
	default:
		return exitError
	}
}
