// Package logging provides the structured logger used across the
// taxonomy-mapper service. It wraps zap behind a small key/value
// interface so packages never depend on zap directly.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// keyValuePairSize is the number of elements in one key-value pair.
const keyValuePairSize = 2

// Logger defines the logging interface for all service packages.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error).
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Development disables sampling so every log line is visible.
	Development bool `yaml:"development"`
	// OutputPaths is a list of file paths or URLs to write to.
	OutputPaths []string `yaml:"output_paths"`
}

// ZapLogger is the zap-backed Logger implementation.
type ZapLogger struct {
	logger *zap.Logger
}

// New creates a JSON-encoded zap logger from the given configuration.
func New(cfg Config) (*ZapLogger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	if cfg.Development {
		zapCfg.Sampling = nil
	}

	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{logger: z}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug logs a message at debug level.
func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, toFields(keysAndValues)...)
}

// Info logs a message at info level.
func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, toFields(keysAndValues)...)
}

// Warn logs a message at warning level.
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, toFields(keysAndValues)...)
}

// Error logs a message at error level.
func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, toFields(keysAndValues)...)
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// toFields converts key-value pairs to zap fields. Trailing keys
// without a value and non-string keys are dropped.
func toFields(keysAndValues []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/keyValuePairSize)
	for i := 0; i+1 < len(keysAndValues); i += keyValuePairSize {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
