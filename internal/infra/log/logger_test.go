package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"aiproxy/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNewLogger_RedactsSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "aiproxy"
	cfg.Env.Log.Level = "debug"

	var buf bytes.Buffer
	logger, err := newLogger(&buf, cfg)
	require.NoError(t, err)

	logger.Info("login", slog.String("email", "ada@example.com"), slog.String("password", "analyticalE"), slog.String("jwt_key", "k"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "aiproxy", line["service"])
	assert.Equal(t, "ada@example.com", line["email"])
	assert.Equal(t, redactedValue, line["password"])
	assert.Equal(t, redactedValue, line["jwt_key"])
	assert.NotContains(t, buf.String(), "analyticalE")
}
