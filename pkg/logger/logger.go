package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/connectsphere/cli/pkg/config"
)

var logger *log.Logger

// Init initializes the logger. Verbose forces debug level, otherwise
// log.level from the config is used.
func Init(verbose bool) {
	logLevel := log.InfoLevel
	if lvl, err := log.ParseLevel(config.GetString("log.level")); err == nil {
		logLevel = lvl
	}
	if verbose {
		logLevel = log.DebugLevel
	}

	var out io.Writer = os.Stderr
	if logFile := config.GetString("log.file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err == nil {
			out = f
		}
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "connectsphere",
	})
	logger.SetLevel(logLevel)
}

// SetOutput redirects the logger, creating it at debug level if needed.
func SetOutput(w io.Writer) {
	if logger == nil {
		logger = log.New(w)
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetOutput(w)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, args ...interface{}) {
	if logger != nil {
		logger.Fatal(msg, args...)
	} else {
		os.Exit(1)
	}
}

// GetLogger returns the logger instance
func GetLogger() *log.Logger {
	return logger
}
