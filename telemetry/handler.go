package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// GlogHandler mimics the filtering features of Google's glog logger:
// a global verbosity ceiling, plus a parsed and stored set of
// per-package patterns (the --vmodule flag) that Enabled does not
// consult. The level ceiling is shared (not copied) across
// WithAttrs/WithGroup derivatives so changing verbosity on the root
// handler is visible to every child logger built from it.
type GlogHandler struct {
	handler  slog.Handler
	level    *atomic.Int32
	lock     *sync.Mutex
	patterns *[]pattern
}

type pattern struct {
	re    *regexp.Regexp
	level int32
}

// NewGlogHandler wraps h with glog-style level filtering.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	return &GlogHandler{
		handler:  h,
		level:    new(atomic.Int32),
		lock:     new(sync.Mutex),
		patterns: new([]pattern),
	}
}

func (h *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

func (h *GlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.Level(h.level.Load())
}

func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &GlogHandler{handler: h.handler.WithAttrs(attrs), level: h.level, lock: h.lock, patterns: h.patterns}
}

func (h *GlogHandler) WithGroup(name string) slog.Handler {
	return &GlogHandler{handler: h.handler.WithGroup(name), level: h.level, lock: h.lock, patterns: h.patterns}
}

// Verbosity sets the glog verbosity ceiling.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.Store(int32(level))
}

// Vmodule parses a glog-style "pkg=level,pkg2=level2" ruleset. Pattern
// matching against the caller's package is not wired up here; Vmodule
// is kept so the CLI flag round-trips and the parse-error behavior is
// testable, with Verbosity as the effective ceiling.
func (h *GlogHandler) Vmodule(ruleset string) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if ruleset == "" {
		*h.patterns = (*h.patterns)[:0]
		return nil
	}

	for _, rule := range strings.Split(ruleset, ",") {
		if rule == "" {
			continue
		}
		parts := strings.SplitN(rule, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid vmodule pattern %q", rule)
		}
		pkg, lvl := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if pkg == "" || lvl == "" {
			return fmt.Errorf("invalid vmodule pattern %q", rule)
		}
		level, err := strconv.Atoi(lvl)
		if err != nil {
			return fmt.Errorf("invalid vmodule pattern %q: %w", rule, err)
		}
		re, err := regexp.Compile(pkg)
		if err != nil {
			return fmt.Errorf("invalid vmodule pattern %q: %w", rule, err)
		}
		*h.patterns = append(*h.patterns, pattern{re: re, level: int32(level)})
	}
	return nil
}

// NewTerminalHandlerWithLevel builds the CLI's default stderr handler: a
// slog text handler at the given level. When useColor is set and w is a
// real terminal (github.com/mattn/go-isatty), w is wrapped through
// github.com/mattn/go-colorable so ANSI codes render correctly on
// Windows consoles too; the slog text handler itself writes no color
// codes.
func NewTerminalHandlerWithLevel(w io.Writer, lvl slog.Level, useColor bool) slog.Handler {
	if f, ok := w.(*os.File); ok && useColor {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			w = colorable.NewColorable(f)
		}
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	glog := NewGlogHandler(text)
	glog.Verbosity(lvl)
	return glog
}

// NewRotatingFileHandler returns a JSON handler writing into a
// size/age-rotated file via gopkg.in/natefinch/lumberjack.v2. Used when
// --log-file is set; this is a diagnostics convenience only, not a
// durability mechanism — the ledger itself persists nothing across runs.
func NewRotatingFileHandler(path string, maxSizeMB, maxBackups, maxAgeDays int) slog.Handler {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelTrace})
}

// MultiHandler fans a single record out to multiple handlers (e.g. the
// terminal handler and an optional rotating file handler).
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}
