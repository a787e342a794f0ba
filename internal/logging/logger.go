// Package logging provides zap logger helpers.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control how the run logger is built.
type Options struct {
	// Verbose raises the level floor from WARN to INFO.
	Verbose bool
	// NoColor disables ANSI coloring of log levels.
	NoColor bool
	// LogFile appends log output to a file instead of stdout.
	LogFile string
}

// DebugEnabled reports whether the DEBUG environment variable requests
// debug-level logging.
func DebugEnabled() bool {
	return envFlag("DEBUG")
}

func envFlag(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// New builds a zap.Logger for one run. Levels default to WARN; Verbose
// raises the floor to INFO and the DEBUG environment variable to DEBUG.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	// File sinks never get ANSI escapes.
	if opts.NoColor || opts.LogFile != "" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.InfoLevel
	}
	if DebugEnabled() {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.LogFile != "" {
		cfg.OutputPaths = []string{opts.LogFile}
		cfg.ErrorOutputPaths = []string{opts.LogFile}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
