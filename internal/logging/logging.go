// Package logging builds the logr loggers used across jsonedit. The TUI owns
// stdout, so log lines only ever go to a file or nowhere.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing one line per record to w. verbosity follows
// logr: V(n) records are emitted when n <= verbosity.
func New(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp: true,
		Verbosity:    verbosity,
	})
}

// ToFile redirects the standard logger into path through Bubble Tea and
// returns a logr logger on top of it. Close the returned closer on exit.
func ToFile(path string, verbosity int) (logr.Logger, io.Closer, error) {
	f, err := tea.LogToFile(path, "jsonedit")
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(log.Writer(), verbosity).WithName("jsonedit"), f, nil
}

// Discard is the logger used when no log file is configured.
func Discard() logr.Logger {
	return logr.Discard()
}

// WithLogger stores lgr in ctx.
func WithLogger(ctx context.Context, lgr logr.Logger) context.Context {
	return logr.NewContext(ctx, lgr)
}

// FromContext returns the logger stored in ctx, or a discard logger.
func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	return logr.FromContextOrDiscard(ctx)
}
