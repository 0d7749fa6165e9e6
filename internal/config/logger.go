package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", raw, err)
	}
	return level, nil
}

// NewLogger writes text records at level or above to w. An unparsable level
// falls back to warn.
func NewLogger(w io.Writer, level string) *slog.Logger {
	parsed, err := ParseLogLevel(level)
	if err != nil {
		parsed = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parsed}))
}
