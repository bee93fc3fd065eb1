// Package config loads CLI settings from the environment, after an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/albertocavalcante/go-depset/coordinate"
)

const (
	LogLevelEnvVar         = "DEPSET_LOG_LEVEL"
	ConflictStrategyEnvVar = "DEPSET_CONFLICT_STRATEGY"
	RepoRootEnvVar         = "DEPSET_REPO_ROOT"
	OutputEnvVar           = "DEPSET_OUTPUT"
	BOMCacheSizeEnvVar     = "DEPSET_BOM_CACHE_SIZE"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

const defaultBOMCacheSize = 128

type Config struct {
	LogLevel         string
	ConflictStrategy coordinate.ConflictStrategy
	RepoRoot         string
	Output           string
	BOMCacheSize     int
}

// Load reads .env from the working directory if present, then the DEPSET_* variables.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the DEPSET_* variables without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:         firstNonEmpty(env(LogLevelEnvVar), "info"),
		ConflictStrategy: coordinate.TakeHighest,
		Output:           OutputText,
		BOMCacheSize:     defaultBOMCacheSize,
	}

	if raw := env(ConflictStrategyEnvVar); raw != "" {
		s, err := coordinate.ParseConflictStrategy(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ConflictStrategyEnvVar, err)
		}
		cfg.ConflictStrategy = s
	}

	root, err := repoRoot()
	if err != nil {
		return nil, err
	}
	cfg.RepoRoot = root

	if raw := env(OutputEnvVar); raw != "" {
		if err := ValidateOutput(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", OutputEnvVar, err)
		}
		cfg.Output = strings.ToLower(raw)
	}

	if raw := env(BOMCacheSizeEnvVar); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: must be a positive integer, got %q", BOMCacheSizeEnvVar, raw)
		}
		cfg.BOMCacheSize = n
	}

	return cfg, nil
}

// ValidateOutput accepts "text" and "yaml", case-insensitively.
func ValidateOutput(s string) error {
	switch strings.ToLower(s) {
	case OutputText, OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q: must be one of %s, %s", s, OutputText, OutputYAML)
}

func repoRoot() (string, error) {
	if root := env(RepoRootEnvVar); root != "" {
		return filepath.Abs(root)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s unset and no home directory: %w", RepoRootEnvVar, err)
	}
	return filepath.Join(home, ".depset", "cache"), nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
