package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotkit/pkg/config"
	"github.com/arthur-debert/dotkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Contains(t, cfg.Packages.Ignore, ".git")
	assert.Equal(t, 3, cfg.Secrets.Attempts)
	assert.Equal(t, "24h", cfg.Doctor.Interval)
	assert.NotEmpty(t, cfg.Symlink.ProtectedPaths)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "dotkit.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Doctor.Interval, cfg.Doctor.Interval)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dotkit.toml", `
[packages]
ignore = ["scripts", "docs"]

[secrets]
command = ["op", "read", "op://Personal/{name}"]
attempts = 5

[doctor]
tools = ["git", "fzf"]
interval = "12h"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"scripts", "docs"}, cfg.Packages.Ignore)
	assert.Equal(t, []string{"op", "read", "op://Personal/{name}"}, cfg.Secrets.Command)
	assert.Equal(t, 5, cfg.Secrets.Attempts)
	assert.Equal(t, []string{"git", "fzf"}, cfg.Doctor.Tools)
	assert.Equal(t, 12*time.Hour, cfg.CheckInterval())
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dotkit.toml", "not [valid toml")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_NonPositiveAttemptsFallBack(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dotkit.toml", `
[secrets]
attempts = -1
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Secrets.Attempts, cfg.Secrets.Attempts)
}

func TestLoadPackageConfig(t *testing.T) {
	t.Run("missing file yields zero config", func(t *testing.T) {
		cfg, err := config.LoadPackageConfig(filepath.Join(t.TempDir(), ".dotkit.toml"))
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Root)
		assert.Empty(t, cfg.Ignore)
	})

	t.Run("parses root and ignore", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), ".dotkit.toml", `
root = "xdg"
ignore = ["README.md"]
`)
		cfg, err := config.LoadPackageConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "xdg", cfg.Root)
		assert.Equal(t, []string{"README.md"}, cfg.Ignore)
	})

	t.Run("rejects unknown root", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), ".dotkit.toml", `root = "desktop"`)
		_, err := config.LoadPackageConfig(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestCheckInterval_FallsBackOnGarbage(t *testing.T) {
	cfg := config.Default()
	cfg.Doctor.Interval = "not-a-duration"
	assert.Equal(t, 24*time.Hour, cfg.CheckInterval())

	cfg.Doctor.Interval = "-5m"
	assert.Equal(t, 24*time.Hour, cfg.CheckInterval())
}

func TestIsProtectedPath(t *testing.T) {
	cfg := config.Default()

	assert.True(t, cfg.IsProtectedPath(".ssh/id_rsa"))
	assert.True(t, cfg.IsProtectedPath(".gnupg/pubring.kbx"))
	assert.False(t, cfg.IsProtectedPath(".ssh/config"))
	assert.False(t, cfg.IsProtectedPath(".gitconfig"))
}
