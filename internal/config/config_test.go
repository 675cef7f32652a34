package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcdcsynth/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 10, cfg.Precision)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFillsZeroValueLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcdcgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 12\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadHonorsExplicitLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcdcgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: json\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFillsZeroValuePrecision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcdcgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 10, cfg.Precision)
}

func TestLoadHonorsExplicitPrecision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcdcgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 15\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Precision)
}
