// Package logx is a thin leveled logging facade over zap so application
// code never depends on a concrete logging backend.
package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the minimum severity that gets emitted.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(LevelInfo)
	sugar = newSugar()
)

func newSugar() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap only fails on invalid config; fall back to a no-op logger.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// SetLevel changes the global minimum level at runtime.
func SetLevel(l Level) {
	level.SetLevel(l)
}

// SetLogger replaces the backing logger (used by tests).
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(args ...any)                 { logger().Debug(args...) }
func Debugf(format string, args ...any) { logger().Debugf(format, args...) }
func Info(args ...any)                  { logger().Info(args...) }
func Infof(format string, args ...any)  { logger().Infof(format, args...) }
func Warn(args ...any)                  { logger().Warn(args...) }
func Warnf(format string, args ...any)  { logger().Warnf(format, args...) }
func Error(args ...any)                 { logger().Error(args...) }
func Errorf(format string, args ...any) { logger().Errorf(format, args...) }
func Fatal(args ...any)                 { logger().Fatal(args...) }
func Fatalf(format string, args ...any) { logger().Fatalf(format, args...) }
