package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		given string
		want  zapcore.Level
	}{
		{name: "debug", given: "debug", want: zapcore.DebugLevel},
		{name: "warn upper case", given: "WARN", want: zapcore.WarnLevel},
		{name: "error", given: "Error", want: zapcore.ErrorLevel},
		{name: "unknown falls back to info", given: "verbose", want: zapcore.InfoLevel},
		{name: "empty falls back to info", given: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.given))
		})
	}
}

func TestParseFormat(t *testing.T) {
	require.Equal(t, FormatJSON, ParseFormat("json"))
	require.Equal(t, FormatConsole, ParseFormat("console"))
	require.Equal(t, FormatConsole, ParseFormat("pretty"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer

	l := NewWithWriter(&buf, "info", FormatJSON)
	l.Debug("dropped")
	l.Named("oven").Info("heater on", zap.Bool("heater", true))
	require.NoError(l.Sync())

	var entry map[string]any
	require.NoError(json.Unmarshal(buf.Bytes(), &entry), "Expected exactly one JSON line, got %q", buf.String())
	require.Equal("INFO", entry["level"])
	require.Equal("oven", entry["component"])
	require.Equal("heater on", entry["msg"])
	require.Equal(true, entry["heater"])
}

func TestNewWithWriter_Console(t *testing.T) {
	require := require.New(t)
	var buf bytes.Buffer

	l := NewWithWriter(&buf, "debug", FormatConsole)
	l.Debug("dispatching")
	require.NoError(l.Sync())

	require.Contains(buf.String(), "DEBUG | dispatching")
}
