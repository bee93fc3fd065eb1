// Package logging installs the process-wide slog handler for the CLI.
package logging

import (
	"io"
	"log/slog"
)

// Init sets the default logger to a text handler on w at the given level
// ("debug", "info", "warn", "error").
func Init(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	return logger, nil
}
