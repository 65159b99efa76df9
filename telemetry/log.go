// Package telemetry wires up structured logging and in-process metrics
// for the ledger CLI. Logging is a thin compatibility re-export over
// github.com/luxfi/log, keeping the package-level Trace/Debug/.../Crit
// call sites and handler plumbing consistent with the rest of the
// luxfi stack; metrics are gathered with prometheus/client_golang but
// never served over HTTP — this is a one-shot batch CLI, not a
// long-running service.
package telemetry

import (
	"context"
	"log/slog"

	luxlog "github.com/luxfi/log"
)

// Logger is the handle returned by Root/New and installed by SetDefault.
type Logger = luxlog.Logger

// Level constants, aligned with log/slog's scale plus the two extra
// levels (Trace below Debug, Crit above Error) carried over from
// go-ethereum's log package, useful for dialing verbosity below Debug
// in a noisy per-event trace without touching error-level output.
const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12
)

// Root returns the default logger.
func Root() Logger { return luxlog.Root() }

// New builds a Logger backed by the given slog.Handler.
func New(h slog.Handler) Logger { return luxlog.New(h) }

// SetDefault installs l as the default logger used by Trace/Debug/.../Crit.
func SetDefault(l Logger) { luxlog.SetDefault(l) }

func Trace(msg string, ctx ...interface{}) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { Root().Crit(msg, ctx...) }

// Enabled reports whether the default logger would emit at level.
func Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

// LevelFromString parses the CLI's --log-level flag value.
func LevelFromString(s string) (slog.Level, error) {
	lvl, err := luxlog.ToLevel(s)
	if err != nil {
		return 0, err
	}
	return slog.Level(lvl), nil
}
