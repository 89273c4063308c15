package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroConfigIsValid(t *testing.T) {
	var cfg Config
	v, err := cfg.CompilerVersion()
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, v.String())

	l, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
py_compatible: true
version: 1.2.3
log:
  level: debug
  sections: [subtype, cache]
`))
	require.NoError(t, err)
	assert.True(t, cfg.PyCompatible)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, []string{"subtype", "cache"}, cfg.Log.Sections)

	l, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown field", "colour: true"},
		{"bad version", "version: not-a-version"},
		{"wrong type", "py_compatible: [1]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tyverse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 0.7.1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.7.1", cfg.Version)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "missing.yaml")
}
