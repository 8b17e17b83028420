package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Init initialises the global logger.
// env: "development" gives a colored console encoder with debug level,
// anything else gives json with the configured level.
func Init(env, level, format string) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if format == "json" {
		cfg.Encoding = "json"
	} else if format == "console" {
		cfg.Encoding = "console"
	}

	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewExample()
	}
	SetLogger(l)
}

// SetLogger replaces the global logger. Used by tests to plug zaptest or an observer core.
func SetLogger(l *zap.Logger) {
	log = l.Sugar()
	zap.ReplaceGlobals(l)
}

// GetLogger returns the global logger, initialising a development one if Init was not called.
func GetLogger() *zap.SugaredLogger {
	if log == nil {
		Init("development", "debug", "")
	}
	return log
}

// Sync flushes buffered entries. Call on shutdown.
func Sync() error {
	return GetLogger().Sync()
}

func Debug(msg string, args ...any) {
	GetLogger().Debugw(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warnw(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Errorw(msg, args...)
}

// Fatal logs and exits the process with code 1.
func Fatal(msg string, args ...any) {
	GetLogger().Fatalw(msg, args...)
}

// DBLog logs a database operation; failures at error level, the rest at debug.
func DBLog(operation, table string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"table", table,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Errorw("database operation failed", fields...)
		return
	}
	GetLogger().Debugw("database operation", fields...)
}
