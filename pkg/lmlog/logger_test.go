package lmlog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelInfo, cfg.Level)
	assert.False(t, cfg.Pretty)
}

func TestSetup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Output: buf})

	logger.Info().Str("tenant", "acme").Msg("client ready")

	output := buf.String()
	assert.Contains(t, output, "client ready")
	assert.Contains(t, output, `"tenant":"acme"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	adapter := NewAdapter(Setup(Config{Level: LevelDebug, Output: buf}))

	adapter.Debug("debug event", map[string]interface{}{"path": "/device/devices"})
	adapter.Info("info event", nil)
	adapter.Warn("warn event", map[string]interface{}{"window_seconds": 5})
	adapter.Error("error event", map[string]interface{}{"status": 502})

	output := buf.String()
	require.Contains(t, output, "debug event")
	assert.Contains(t, output, `"path":"/device/devices"`)
	assert.Contains(t, output, "info event")
	assert.Contains(t, output, `"window_seconds":5`)
	assert.Contains(t, output, `"status":502`)
}

func TestAdapterLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	adapter := NewAdapter(Setup(Config{Level: LevelWarn, Output: buf}))

	adapter.Debug("debug event", nil)
	adapter.Info("info event", nil)
	adapter.Warn("warn event", nil)

	output := buf.String()
	assert.NotContains(t, output, "debug event")
	assert.NotContains(t, output, "info event")
	assert.Contains(t, output, "warn event")
}
