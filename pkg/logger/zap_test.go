package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZapLogger_FileOutputWithServiceFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")

	log, err := NewZapLogger(Config{
		Level:       "warn",
		Format:      "json",
		Output:      "file",
		FilePath:    path,
		Service:     "storefront",
		Environment: "test",
	})
	require.NoError(t, err)

	log.Info("dropped below level")
	log.Warn("checkout failed")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "checkout failed", entry["message"])
	assert.Equal(t, "warn", entry["log.level"])
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.NotContains(t, entry, "version")
}

func TestNewZapLogger_InvalidConfig(t *testing.T) {
	_, err := NewZapLogger(Config{Level: "verbose"})
	assert.Error(t, err)

	_, err = NewZapLogger(Config{Output: "file"})
	assert.Error(t, err)
}

func TestNewZapLogger_DefaultLevel(t *testing.T) {
	log, err := NewZapLogger(Config{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(0))
}
