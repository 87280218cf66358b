package core

import (
	"io"
	"log/slog"
)

// ConfigureLogger installs a text slog handler writing to w at the given
// level as the default logger. Unknown levels fall back to warn.
func ConfigureLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
