package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ragdesk.log")

	logger, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)

	logger.Named("registry").Info("refresh failed")
	logger.Debug("noisy")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "registry", first["component"])
	assert.Equal(t, "refresh failed", first["message"])
	assert.Contains(t, first, "timestamp")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragdesk.log")
	logger, err := New(Options{Path: path, Level: "chatty"})
	require.NoError(t, err)

	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err == nil {
		assert.Empty(t, strings.TrimSpace(string(data)))
	}
}

func TestNew_EmptyPathFails(t *testing.T) {
	_, err := New(Options{Path: "  "})
	assert.Error(t, err)
}
