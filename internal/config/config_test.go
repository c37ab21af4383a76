package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "awaybot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Asia/Bangkok", cfg.App.Timezone)
	assert.Equal(t, 3, cfg.App.NotifyAttempts)
	assert.Len(t, cfg.Kinds, 6)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	k, ok := catalog.Lookup("restroom-long")
	require.True(t, ok)
	assert.Equal(t, 15, k.LimitMinutes)
}

func TestLoadOverridesKeepDefaultKinds(t *testing.T) {
	path := writeConfig(t, `
[app]
timezone = "UTC"
notify-attempts = 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, 5, cfg.App.NotifyAttempts)
	assert.Len(t, cfg.Kinds, 6)
}

func TestLoadCustomCatalog(t *testing.T) {
	path := writeConfig(t, `
[app]
database-path = "/tmp/away.db"
initial-superadmin = "u9"

[[kind]]
name = "coffee"
label = "☕ Coffee Run"
limit-minutes = 7
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "u9", cfg.App.InitialSuperadmin)

	dbPath, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/away.db", dbPath)

	require.Len(t, cfg.Kinds, 1)
	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	k, ok := catalog.Lookup("coffee")
	require.True(t, ok)
	assert.Equal(t, "☕ Coffee Run", k.Label)
	assert.Equal(t, 7, k.LimitMinutes)
}

func TestLoadUnparseableFileFails(t *testing.T) {
	path := writeConfig(t, `not valid toml = = =`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestCatalogRejectsBadKind(t *testing.T) {
	cfg := &Config{Kinds: []Kind{{Name: "smoke", LimitMinutes: -3}}}
	_, err := cfg.Catalog()
	assert.Error(t, err)
}

func TestLocationDefaultsToUTC(t *testing.T) {
	cfg := &Config{}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
