// Package logging provides the process-wide structured logger.
//
// It wraps zap behind package-level helpers so call sites stay terse:
//
//	logging.Infof("loaded %d terms", n)
//
// The logger is initialized once at startup via InitLoggerFromEnv and is
// safe for concurrent use afterwards.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   *zap.SugaredLogger
	loggerMu sync.RWMutex
)

func init() {
	// Default logger so helpers work before explicit initialization
	// (tests, early startup paths).
	l, _ := zap.NewProduction(zap.AddCallerSkip(1))
	logger = l.Sugar()
}

// InitLoggerFromEnv configures the global logger from environment variables:
//
//	PURGO_LOG_LEVEL:  debug | info | warn | error (default: info)
//	PURGO_LOG_FORMAT: json | console (default: json)
func InitLoggerFromEnv() (*zap.SugaredLogger, error) {
	level := strings.ToLower(os.Getenv("PURGO_LOG_LEVEL"))
	format := strings.ToLower(os.Getenv("PURGO_LOG_FORMAT"))
	return InitLogger(level, format)
}

// InitLogger configures the global logger with the given level and format.
func InitLogger(level, format string) (*zap.SugaredLogger, error) {
	zapLevel := zapcore.InfoLevel
	switch level {
	case "", "info":
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	loggerMu.Lock()
	logger = l.Sugar()
	loggerMu.Unlock()
	return get(), nil
}

func get() *zap.SugaredLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { get().Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...interface{}) { get().Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(format string, args ...interface{}) { get().Fatalf(format, args...) }

// Sync flushes buffered log entries. Call on shutdown.
func Sync() error { return get().Sync() }
