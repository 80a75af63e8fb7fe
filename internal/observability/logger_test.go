package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", "info")

	logger.Debug("hidden")
	logger.Info("day processed", "status", "OK")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "day processed", entry["msg"])
	assert.Equal(t, "OK", entry["status"])
	assert.Equal(t, "sounding-archiver", entry["app"])
}

func TestNewLogger_TextHasNoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "text", "debug")

	logger.Debug("fetching sounding", "url", "http://example.test")

	out := buf.String()
	assert.Contains(t, out, "fetching sounding")
	assert.Contains(t, out, "url=http://example.test")
	assert.NotContains(t, out, "\x1b[")
}
