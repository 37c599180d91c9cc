package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// DebugEnabled returns true if debug mode is enabled via INFOCO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("INFOCO_DEBUG") != ""
}

var debugLogger = New(Options{Level: "debug"})

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger.Debugf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		debugLogger.Debugln(args...)
	}
}

// SetDebugLogger replaces the logger used by Debugf and Debugln
func SetDebugLogger(l *log.Logger) {
	debugLogger = l
}
