package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected log.Level
	}{
		{"default", Options{}, log.InfoLevel},
		{"explicit warn", Options{Level: "warn"}, log.WarnLevel},
		{"verbose raises to debug", Options{Level: "info", Verbose: true}, log.DebugLevel},
		{"verbose keeps trace", Options{Level: "trace", Verbose: true}, log.TraceLevel},
		{"unknown level", Options{Level: "chatty"}, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.opts)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{JSON: true, Output: &buf})

	logger.WithField("request_id", "abc").Info("handled")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"msg":"handled"`)
}
