package holokit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// NewLogger creates a text logger at the given level ("debug", "info",
// "warn", "error"; anything else is info). A nil writer logs to stderr.
// The "error" attribute key is shortened to "err".
func NewLogger(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// nopLogger returns a logger that discards everything.
func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	inputTime   time.Duration
	updateTime  time.Duration
	focusTime   time.Duration
	lateTime    time.Duration
	hitCount    int
	focusedSize int
}

// debugLog logs the frame timing at debug level.
func (s *Session) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.inputTime + stats.updateTime + stats.focusTime + stats.lateTime
	s.logger.Debug("frame",
		"frame", s.frame,
		"input", stats.inputTime,
		"update", stats.updateTime,
		"focus", stats.focusTime,
		"late", stats.lateTime,
		"total", total,
		"hits", stats.hitCount,
		"focused", stats.focusedSize,
	)
}

// entityLabel formats an entity for log attributes.
func entityLabel(e *Entity) string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", e.Name, e.ID)
}
