package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// InitLogger configures a Charm logger. While the TUI owns the
// terminal, pass a file or io.Discard as out so log lines don't tear
// the view.
func InitLogger(out io.Writer, verbose bool) *log.Logger {
	if out == nil {
		out = os.Stderr
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportCaller:    verbose,
		ReportTimestamp: verbose,
		Prefix:          "dexview",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}
