package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvSource, "")
	t.Setenv(EnvLogLevel, "")
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	dir := isolate(t)

	cfg, path, exists, err := Load("")
	require.NoError(t, err)

	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "plotsort", "config.toml"), path)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Empty(t, cfg.SourceDir)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
source_dir = "/srv/plots"
log_level = "DEBUG"
quiet = true

[history]
enabled = false
limit = 5

[lock]
dir = "/run/plotsort"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "/srv/plots", cfg.SourceDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.Equal(t, "/run/plotsort", cfg.Lock.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "env.toml")
	require.NoError(t, os.WriteFile(path, []byte(`source_dir = "/srv/from-file"`), 0o644))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvSource, "/srv/from-env")
	t.Setenv(EnvLogLevel, "error")

	cfg, resolved, exists, err := Load("")
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "/srv/from-env", cfg.SourceDir)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_ExpandsHome(t *testing.T) {
	dir := isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := filepath.Join(dir, "home.toml")
	require.NoError(t, os.WriteFile(path, []byte(`source_dir = "~/plots"`), 0o644))

	cfg, _, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "plots"), cfg.SourceDir)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown level", content: `log_level = "loud"`, errMsg: "log_level"},
		{name: "negative limit", content: "[history]\nlimit = -1", errMsg: "history.limit"},
		{name: "unknown key", content: `source = "/srv"`, errMsg: "parse config"},
		{name: "invalid toml", content: `source_dir = `, errMsg: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, _, _, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCreateSample(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "plotsort", "config.toml")

	require.NoError(t, CreateSample(path))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, Default(), *cfg)
}

func TestSample_IsValidTOML(t *testing.T) {
	var cfg Config
	require.NoError(t, toml.NewDecoder(strings.NewReader(Sample())).DisallowUnknownFields().Decode(&cfg))
}
