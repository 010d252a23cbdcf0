// Package logging builds the component-tagged structured loggers used
// across the reporting core.
package logging

import (
	"log/slog"
	"os"
)

// New returns a logger writing human-readable records to stderr, tagged with
// the owning component. Verbose lowers the level to debug.
func New(component string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("component", component)
}
