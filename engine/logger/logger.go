package logger

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

// forgeLogger wraps the charmbracelet logger so the rest of the engine can log
// through package-level helpers without holding a logger instance.
type forgeLogger struct {
	*log.Logger
}

var singleton *forgeLogger

func getLogger() *forgeLogger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "forge",
		})
		l.SetLevel(log.InfoLevel)
		singleton = &forgeLogger{l}
	})
	return singleton
}

// SetDebug enables or disables debug-level output for the engine logger.
//
// Parameters:
//   - enabled: if true, debug messages are emitted
func SetDebug(enabled bool) {
	if enabled {
		getLogger().SetLevel(log.DebugLevel)
		return
	}
	getLogger().SetLevel(log.InfoLevel)
}

// Debug logs a formatted debug-level message.
func Debug(msg string, args ...any) {
	getLogger().Debugf(msg, args...)
}

// Info logs a formatted info-level message.
func Info(msg string, args ...any) {
	getLogger().Infof(msg, args...)
}

// Warn logs a formatted warning-level message.
func Warn(msg string, args ...any) {
	getLogger().Warnf(msg, args...)
}

// Error logs a formatted error-level message.
func Error(msg string, args ...any) {
	getLogger().Errorf(msg, args...)
}

// Fatal logs a formatted fatal-level message and exits the process.
func Fatal(msg string, args ...any) {
	getLogger().Fatalf(msg, args...)
}
