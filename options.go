package depset

import (
	"context"
	"log/slog"
)

// Option configures the derivation functions.
type Option func(*deriveConfig) error

// deriveConfig holds derivation configuration.
type deriveConfig struct {
	// strictVersions makes every derivation fail on unspecified versions, not only publishing.
	strictVersions bool

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithStrictVersions makes [ComputeIDEDependencies] fail when a dependency is left
// without a version, as the publish derivations always do.
func WithStrictVersions() Option {
	return func(c *deriveConfig) error {
		c.strictVersions = true
		return nil
	}
}

// WithLogger sets a structured logger for derivation diagnostics.
// If not set, or set to nil, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "depset")
//	depset.ComputeIDEDependencies(compile, runtime, test, coordinate.TakeHighest, depset.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *deriveConfig) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
// This allows internal code to call logging methods without nil checks.
func (c *deriveConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newDeriveConfig applies the given options in order.
func newDeriveConfig(opts ...Option) (*deriveConfig, error) {
	c := &deriveConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
