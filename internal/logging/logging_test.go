package logging

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
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "warning", expected: slog.LevelWarn},
		{input: " error ", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lvl, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, lvl)
		})
	}
}

func TestInitJSON(t *testing.T) {
	old := defaultLogger
	t.Cleanup(func() { defaultLogger = old })

	var buf bytes.Buffer
	require.NoError(t, Init("info", "json", &buf))

	L().Debug("hidden")
	L().Info("parsed", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed", entry["msg"])
	assert.Equal(t, float64(3), entry["records"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	old := defaultLogger
	t.Cleanup(func() { defaultLogger = old })

	var buf bytes.Buffer
	assert.Error(t, Init("info", "xml", &buf))
	assert.Same(t, old, L())
}
