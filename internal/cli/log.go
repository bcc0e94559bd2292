// Package cli implements the structogram command-line interface.
//
// The CLI draws methods of a class model as Nassi-Shneiderman diagrams,
// inspects their layout, serves the same pipeline over HTTP, and manages the
// local cache. It is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Draw a method as SVG, PNG, PDF, JSON or text
//   - visualize: Paint a scene saved with 'render -f json'
//   - layout: Print the box sizes of a method
//   - methods: List the methods of a class
//   - tree: Draw the control tree as a Graphviz node-link graph
//   - browse: Pick and preview methods in the terminal
//   - serve: Run the HTTP service
//   - cache: Manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so commands and the server share one sink.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with a short
// wall-clock timestamp such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command run.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, rounded to the
// millisecond, under the "elapsed" key.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey struct{}

// withLogger attaches l to ctx so the server and pipeline log through the
// command's logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
