package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewStructuredLogger_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "ohai", "v1.2.3", "info")

	logger.Info("collecting", "provider", "openstack")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ohai", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "openstack", rec["provider"])
	assert.Equal(t, "collecting", rec["msg"])
	assert.NotContains(t, rec, "source")
}

func TestNewStructuredLogger_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "ohai", "dev", "debug")

	logger.Debug("probe")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "source")
}

func TestNewStructuredLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "ohai", "dev", "error")

	logger.Info("dropped")
	logger.Warn("dropped too")

	assert.Zero(t, buf.Len())
}

func TestSetDefaultStructuredLoggerWithLevel_EnvFallback(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv(EnvLogLevel, "debug")
	SetDefaultStructuredLoggerWithLevel("ohai", "dev", "")

	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
}
