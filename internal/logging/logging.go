// Package logging provides structured logging with zap.
//
// Output is teed to a JSON file and to an in-memory ring buffer that the UI
// renders as the log pane. Nothing is ever written to stdout or stderr while
// the screen is active.
package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ringCapacity = 200

var (
	mu           sync.Mutex
	globalLogger *zap.Logger
	globalRing   *Ring
)

// Config holds logging configuration.
type Config struct {
	Level    string // debug, info, warn, error
	FilePath string // JSON log file; empty disables the file sink
}

// Init initializes the global logger.
func Init(cfg Config) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	ring := NewRing(ringCapacity)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(ring), level),
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	mu.Lock()
	globalLogger = logger
	globalRing = ring
	mu.Unlock()
	return nil
}

// L returns the global logger. Before Init it logs only to the ring, so
// early callers never corrupt the terminal.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		initRingOnly()
	}
	return globalLogger
}

// S returns the global sugared logger.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync flushes any buffered log entries.
func Sync() error {
	mu.Lock()
	logger := globalLogger
	mu.Unlock()
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// Lines returns the buffered log-pane lines, oldest first.
func Lines() []string {
	mu.Lock()
	ring := globalRing
	mu.Unlock()
	if ring == nil {
		return nil
	}
	return ring.Lines()
}

func initRingOnly() {
	ring := NewRing(ringCapacity)
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(ring), zapcore.InfoLevel)
	globalLogger = zap.New(core)
	globalRing = ring
}
