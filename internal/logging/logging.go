// Package logging builds the structured logger shared by the command line
// and the simulator.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing to w at level ("debug", "info", "warn",
// "error"). Timestamps are only shown when w is a terminal.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "montyhall",
		ReportTimestamp: IsTerminal(w),
		TimeFormat:      time.Kitchen,
	}), nil
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
