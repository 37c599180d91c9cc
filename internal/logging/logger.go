package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options configures a logger built by New
type Options struct {
	Level   string
	Verbose bool
	JSON    bool
	Output  io.Writer
}

// New builds a logrus logger writing to stderr unless Output is set.
// Verbose raises the level to debug. Unknown levels fall back to info.
func New(opts Options) *log.Logger {
	logger := log.New()

	logger.SetOutput(os.Stderr)
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}

	if opts.JSON {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	level, err := log.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}
	if opts.Verbose && level < log.DebugLevel {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	return logger
}
