// Package logger wraps zap behind a small structured logging interface.
package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the service.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is a key-value pair attached to a log entry.
type Field = zap.Field

// Config selects level and output of a logger.
type Config struct {
	Level       string
	Development bool
	OutputPaths []string
}

type zapLogger struct {
	logger *zap.Logger
}

// New builds a JSON logger. Development mode switches to the console encoder
// and disables sampling.
func New(cfg Config) (Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Sampling = nil
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}

	z, err := zapCfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &zapLogger{logger: z}, nil
}

// NewWithZap wraps an existing zap logger, mostly for tests using zaptest
// observers.
func NewWithZap(z *zap.Logger) Logger {
	return &zapLogger{logger: z}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.logger.Fatal(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

type nopLogger struct{}

// NewNop returns a logger that discards everything. Fatal does not exit.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) Fatal(string, ...Field) {}
func (n nopLogger) With(...Field) Logger { return n }
func (nopLogger) Sync() error            { return nil }

func String(key, val string) Field {
	return zap.String(key, val)
}

func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

func Error(err error) Field {
	return zap.Error(err)
}
