package config

import (
	"fmt"
	"os"
)

const (
	ExitError       = 1
	ExitInterrupted = 130
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	ExitCodef(ExitError, format, args...)
}

// ExitCodef is Exitf with an explicit exit code.
func ExitCodef(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
