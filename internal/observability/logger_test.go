// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-view/pkg/types"
)

func TestNewLoggerToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, types.LogConfig{Level: "info", Format: "json"})

	logger.Debug().Msg("hidden")
	logger.Info().Str("format", "ris").Msg("exported")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ris", entry["format"])
	assert.Equal(t, "exported", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, types.LogConfig{Level: "debug", Format: "console"})

	logger.Debug().Msg("loaded")
	assert.Contains(t, buf.String(), "loaded")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citation-view.log")
	logger, closer, err := NewLogger(types.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Warn().Msg("export failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"export failed"`)
}

func TestNewLoggerBadFile(t *testing.T) {
	_, _, err := NewLogger(types.LogConfig{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestWithExportContext(t *testing.T) {
	var buf bytes.Buffer
	logger := WithExportContext(NewLoggerTo(&buf, types.LogConfig{Format: "json"}), "xlsx", 3)
	logger.Info().Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "xlsx", entry["format"])
	assert.Equal(t, float64(3), entry["count"])
}
