package pad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the pad. By default nothing is
// logged. Pass nil to restore the silent default.
//
// Levels:
//   - [slog.LevelDebug]: per-stroke diagnostics (dropped samples, replays)
//   - [slog.LevelInfo]: surface resizes, imports
//   - [slog.LevelWarn]: skipped curves, failed imports
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current pad logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
