package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates the diagnostics logger. verbose forces debug level.
// An unknown level falls back to warn.
func NewLogger(w io.Writer, level string, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "phprun",
	})
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", level)
	}
	return logger
}
