package logger

import (
	"fmt"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger writes structured JSON logs through zap. Messages are formatted
// but not translated, so log processors see stable text.
type ZapLogger struct {
	z     *zap.Logger
	level ports.LogLevel
}

// NewZap creates a JSON logger writing to stderr at the given level.
func NewZap(level ports.LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{z: z, level: level}, nil
}

// NewZapWithCore wraps an existing zap core.
func NewZapWithCore(core zapcore.Core, level ports.LogLevel) *ZapLogger {
	return &ZapLogger{z: zap.New(core), level: level}
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.z.Debug(fmt.Sprintf(msg, args...))
}

// Info logs an informational message.
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.z.Info(fmt.Sprintf(msg, args...))
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.z.Warn(fmt.Sprintf(msg, args...))
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.z.Error(fmt.Sprintf(msg, args...))
}

// WithComponent returns a logger that adds a component field.
func (l *ZapLogger) WithComponent(component string) ports.Logger {
	return &ZapLogger{
		z:     l.z.With(zap.String("component", component)),
		level: l.level,
	}
}

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func zapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	case ports.LevelQuiet:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

var _ ports.Logger = (*ZapLogger)(nil)
