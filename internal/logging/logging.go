// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process zap logger from LogConfig.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/biosynth/pkg/types"
)

// Stderr is the output path that keeps logs on the terminal.
const Stderr = "stderr"

// New builds a logger for cfg. Production config emits JSON; Development
// emits console lines. When toFile is set, output goes to cfg.File (default
// biosynth.log) so it does not interfere with a full-screen UI; otherwise it
// goes to stderr.
func New(cfg types.LogConfig, toFile bool) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	if cfg.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	out := Stderr
	if toFile {
		out = cfg.File
		if out == "" {
			out = types.DefaultLogFile
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
	}
	config.OutputPaths = []string{out}
	config.ErrorOutputPaths = []string{Stderr}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: want debug, info, warn, or error", s)
	}
	return level, nil
}
