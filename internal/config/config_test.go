package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"images:\n  - /images/disk0.bin\n  - /images/disk1.bin\nvolume: SYS\nlog-level: DEBUG\n",
	), 0o644))
	t.Setenv("NWFSREAD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"/images/disk0.bin", "/images/disk1.bin"}, cfg.Images)
	require.Equal(t, "SYS", cfg.Volume)
	require.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("NWFSREAD_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Empty(t, cfg.Images)
	require.Empty(t, cfg.Volume)
}
