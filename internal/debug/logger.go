// Package debug provides the process-wide debug logger of sqltree.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = newLogger(io.Discard, false)
)

// silent is above every level slog emits.
const silent = slog.LevelError + 1

func newLogger(w io.Writer, enable bool) *slog.Logger {
	level := silent
	if enable {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init enables or silences debug output on stderr.
func Init(enable bool) {
	SetOutput(os.Stderr, enable)
}

// SetOutput directs debug output to w.
func SetOutput(w io.Writer, enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	logger = newLogger(w, enable)
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns the logger annotated with args.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
