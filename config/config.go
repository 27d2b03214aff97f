// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/xyproto/env/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
	// LogFile receives the log instead of stderr when set.
	LogFile string
	// MemoIndex adds a fingerprint index to every memo table.
	MemoIndex bool
	// HeapLimit caps live heap objects. Zero means unlimited.
	HeapLimit int
	// MaxDepth caps the number of nested interpreted frames.
	MaxDepth int
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		MemoIndex: true,
		MaxDepth:  10000,
	}
}

// Load reads the given .env files, or DotEnvFile when none are given, and
// then the environment. Variables already set in the environment win over
// the files. A missing file is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DotEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, f, err)
		}
	}
	cfg := FromEnv()
	return cfg, cfg.Validate()
}

// FromEnv reads the environment only. Unset variables keep their defaults.
func FromEnv() Config {
	// env caches variables; pick up anything set since the last read
	env.Load()
	def := Default()
	cfg := Config{
		LogLevel:  env.Str(KeyLogLevel, def.LogLevel),
		LogFile:   env.Str(KeyLogFile, def.LogFile),
		MemoIndex: def.MemoIndex,
		HeapLimit: env.Int(KeyHeapLimit, def.HeapLimit),
		MaxDepth:  env.Int(KeyMaxDepth, def.MaxDepth),
	}
	if env.Has(KeyMemoIndex) {
		cfg.MemoIndex = env.Bool(KeyMemoIndex)
	}
	return cfg
}

func (c Config) Validate() error {
	if c.HeapLimit < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, KeyHeapLimit, c.HeapLimit)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, KeyMaxDepth, c.MaxDepth)
	}
	return nil
}
