package rm2fb

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all log records.
// Enabled returns false so callers skip building the record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by rm2fb.
// By default rm2fb produces no log output. Pass nil to silence it again.
//
// Log levels used by rm2fb:
//   - [slog.LevelDebug]: pixels dropped by the overrun guard, rejected bitmaps
//   - [slog.LevelInfo]: device lifecycle (Dev created, halted)
//
// Example:
//
//	rm2fb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by rm2fb.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
