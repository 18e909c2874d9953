package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	t.Run("defaults_when_file_missing", func(t *testing.T) {
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
		require.NoError(t, err)

		assert.True(t, cfg.Settings.Interactive)
		assert.Empty(t, cfg.Settings.DefaultTools)
		assert.Equal(t, 50, cfg.Settings.HistoryLimit)
		assert.Empty(t, cfg.Repositories)
	})

	t.Run("user_file_overrides_defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[settings]
interactive = false
default_tools = ["claude", "cursor"]

[[repositories]]
name = "team"
url = "https://github.com/acme/presets.git"
default = true

[[repositories]]
name = "local"
url = "/srv/presets"
source_type = "LOCAL"
description = "On-disk presets"
`), 0644))

		cfg, err := LoadFrom(path)
		require.NoError(t, err)

		assert.False(t, cfg.Settings.Interactive)
		assert.Equal(t, []string{"claude", "cursor"}, cfg.Settings.DefaultTools)
		require.Len(t, cfg.Repositories, 2)
		assert.Equal(t, SourceGit, cfg.Repositories[0].SourceType)
		assert.True(t, cfg.Repositories[0].Default)
		assert.Equal(t, SourceLocal, cfg.Repositories[1].SourceType)
		assert.Equal(t, "On-disk presets", cfg.Repositories[1].Description)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		t.Setenv("AIDOT_DEFAULT_TOOLS", "copilot,cursor")
		t.Setenv("AIDOT_INTERACTIVE", "false")

		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
		require.NoError(t, err)
		assert.Equal(t, []string{"copilot", "cursor"}, cfg.Settings.DefaultTools)
		assert.False(t, cfg.Settings.Interactive)
	})

	t.Run("overrides_win_over_env", func(t *testing.T) {
		t.Setenv("AIDOT_INTERACTIVE", "true")

		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"),
			map[string]interface{}{"settings.interactive": false})
		require.NoError(t, err)
		assert.False(t, cfg.Settings.Interactive)
		assert.Equal(t, 50, cfg.Settings.HistoryLimit)
	})

	t.Run("invalid_source_type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[repositories]]\nname = \"x\"\nurl = \"y\"\nsource_type = \"svn\"\n"), 0644))

		_, err := LoadFrom(path)
		assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrConfigParse))
	})

	t.Run("malformed_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[repositories]\n"), 0644))

		_, err := LoadFrom(path)
		assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrConfigParse))
	})
}

func TestRegistry(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.Add(Repository{Name: "team", URL: "git@github.com:acme/presets.git"}))
	require.NoError(t, cfg.Add(Repository{Name: "mine", URL: "~/presets", Default: true}))

	err := cfg.Add(Repository{Name: "team", URL: "elsewhere"})
	assert.True(t, aierrors.IsErrorCode(err, aierrors.ErrAlreadyExists))
	assert.True(t, aierrors.IsErrorCode(cfg.Add(Repository{Name: "a/b", URL: "x"}), aierrors.ErrInvalidInput))
	assert.True(t, aierrors.IsErrorCode(cfg.Add(Repository{Name: "", URL: "x"}), aierrors.ErrInvalidInput))

	team, ok := cfg.Get("team")
	require.True(t, ok)
	assert.Equal(t, SourceGit, team.SourceType)

	require.NoError(t, cfg.SetDefault("team", true))
	require.NoError(t, cfg.SetDefault("mine", false))
	defaults := cfg.Defaults()
	require.Len(t, defaults, 1)
	assert.Equal(t, "team", defaults[0].Name)

	cfg.MarkCached("team", time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC))
	team, _ = cfg.Get("team")
	assert.Equal(t, "2026-01-11T08:00:00Z", team.CachedAt)

	require.NoError(t, cfg.Remove("mine"))
	assert.True(t, aierrors.IsErrorCode(cfg.Remove("mine"), aierrors.ErrNotFound))
	assert.True(t, aierrors.IsErrorCode(cfg.SetDefault("mine", true), aierrors.ErrNotFound))
	assert.Len(t, cfg.List(), 1)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())

	require.NoError(t, cfg.Add(Repository{Name: "team", URL: "https://example.com/p.git", Default: true, Description: "Team"}))
	cfg.RecordPull("/work/app", []string{"team"}, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Repositories, 1)
	assert.Equal(t, cfg.Repositories[0], reloaded.Repositories[0])

	last, ok := reloaded.LastPull("/work/app")
	require.True(t, ok)
	assert.Equal(t, []string{"team"}, last.Repositories)
	assert.Equal(t, "2026-02-01T00:00:00Z", last.Timestamp)
}

func TestRecordPullKeepsLimit(t *testing.T) {
	cfg := &Config{Settings: Settings{HistoryLimit: 2}}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		cfg.RecordPull("/p", []string{string(rune('a' + i))}, base.Add(time.Duration(i)*time.Hour))
	}

	require.Len(t, cfg.History, 2)
	last, ok := cfg.LastPull("/p")
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, last.Repositories)

	_, ok = cfg.LastPull("/other")
	assert.False(t, ok)
}

func TestIsGitURL(t *testing.T) {
	for _, url := range []string{"https://github.com/a/b", "http://x/y", "git@github.com:a/b.git", "ssh://git@host/repo", "repo.git"} {
		assert.True(t, IsGitURL(url), url)
	}
	for _, url := range []string{"/srv/presets", "./local", "team"} {
		assert.False(t, IsGitURL(url), url)
	}
}
