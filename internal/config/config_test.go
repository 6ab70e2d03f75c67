package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, ".loom/tags.db", cfg.StorePath)
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.Mouse)
	require.NotEmpty(t, cfg.Theme.Highlight)
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults(), cfg)
}

func TestWriteDefaultConfig_CurrentDir(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	require.NoError(t, WriteDefaultConfig("config.yaml"))
	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
}
