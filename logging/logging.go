// Package logging builds the zap loggers used by the runtime and the CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/on-the-ground/rvm_ive_go/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidLevel = errors.New("invalid log level")

// Console returns a logger writing human readable lines to w.
func Console(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

// New builds the logger described by cfg. The returned close function
// syncs the logger and closes the log file, if one was opened.
func New(cfg config.Config) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidLevel, cfg.LogLevel)
	}

	if cfg.LogFile == "" {
		logger := Console(os.Stderr, level)
		return logger, func() error {
			// stderr refuses fsync on most terminals
			_ = logger.Sync()
			return nil
		}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := Console(f, level)
	return logger, func() error {
		return errors.Join(logger.Sync(), f.Close())
	}, nil
}
