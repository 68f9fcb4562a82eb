package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{level: "debug", expected: zapcore.DebugLevel},
		{level: "info", expected: zapcore.InfoLevel},
		{level: "warn", expected: zapcore.WarnLevel},
		{level: "error", expected: zapcore.ErrorLevel},
		{level: "verbose", expected: zapcore.InfoLevel},
		{level: "", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewZapLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.log")

	logger, err := NewZapLogger(Config{Level: "warn", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Info("dropped below level")
	logger.Warn("invite mail failed", zap.String("workspace_id", "WS01"))
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"invite mail failed"`)
	assert.Contains(t, string(content), `"workspace_id":"WS01"`)
	assert.NotContains(t, string(content), "dropped below level")
}
