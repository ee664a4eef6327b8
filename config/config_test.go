package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("OXIDE_HOME")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddress)
	require.Equal(t, int64(1<<20), cfg.HybridSpillThreshold)
	require.NotEmpty(t, cfg.Home)
}

func TestLoadFromFile(t *testing.T) {
	os.Unsetenv("OXIDE_HOME")
	dir := t.TempDir()
	path := filepath.Join(dir, "coredb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
home = "`+dir+`"
listen_address = ":9090"
hybrid_spill_threshold = 4096
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, dir, cfg.Home)
	require.Equal(t, ":9090", cfg.ListenAddress)
	require.Equal(t, int64(4096), cfg.HybridSpillThreshold)
}

func TestOxideHomeOverridesFile(t *testing.T) {
	dir := t.TempDir()
	override := t.TempDir()
	path := filepath.Join(dir, "coredb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`home = "`+dir+`"`), 0o644))

	t.Setenv("OXIDE_HOME", override)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, override, cfg.Home)
}
