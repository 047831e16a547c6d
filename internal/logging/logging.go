// Package logging constructs the application logger.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w with the given component prefix
func New(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Prefix:          prefix,
	})
}
