package dot

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the structured logger used by an Engine and everything
// it owns. A nil writer logs to stderr.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "dot",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// nopLogger is used by scenes that are not registered with a manager.
var nopLogger = discardLogger()

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// loggerOr returns l, or a logger that discards everything when l is nil.
func loggerOr(l *log.Logger) *log.Logger {
	if l == nil {
		return discardLogger()
	}
	return l
}
