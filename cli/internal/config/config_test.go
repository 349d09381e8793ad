package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqltree/cli/internal/config"
)

func setup(t *testing.T) (afero.Fs, string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	prev := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = prev })

	home := filepath.Join(string(filepath.Separator), "home", "tester")
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("DATABASE_URL", "")
	for _, key := range []string{"SQLTREE_DIALECT", "SQLTREE_ESCAPE", "SQLTREE_PROVIDER", "SQLTREE_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	os.Unsetenv("DATABASE_URL")
	return fs, home
}

func TestLoadDefaults(t *testing.T) {
	setup(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "sqlite", cfg.Provider)
	assert.Empty(t, cfg.Escape)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.File)
}

func TestLoadFromHomeConfig(t *testing.T) {
	fs, home := setup(t)

	file := filepath.Join(home, ".config", "sqltree", ".sqltree.yaml")
	require.NoError(t, afero.WriteFile(fs, file, []byte("dialect: mysql\nprovider: mysql\ndebug: true\ndefault_order: order by 1\n"), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "mysql", cfg.Provider)
	assert.Equal(t, "order by 1", cfg.DefaultOrder)
	assert.True(t, cfg.Debug)
	assert.Equal(t, file, cfg.File)
}

func TestLoadEnvironment(t *testing.T) {
	fs, _ := setup(t)
	t.Setenv("SQLTREE_ESCAPE", "'")

	require.NoError(t, afero.WriteFile(fs, ".env", []byte("DATABASE_URL=file:one.db\n"), 0o644))
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "'", cfg.Escape)
	assert.Equal(t, "file:one.db", cfg.DatabaseURL)

	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("DATABASE_URL=file:two.db\n"), 0o644))
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "file:two.db", cfg.DatabaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	_, home := setup(t)

	path, err := config.Save(&config.Config{Dialect: "postgres", Provider: "postgres", Escape: `"`})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "sqltree", ".sqltree.yaml"), path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "postgres", cfg.Provider)
	assert.Equal(t, `"`, cfg.Escape)
}
