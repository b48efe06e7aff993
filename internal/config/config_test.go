package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, "papelaria.db", cfg.DBPath)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.False(t, cfg.Debug)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papelaria.toml")
	content := "server_url = \"https://chat.papelaria.example\"\ndebug = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.papelaria.example", cfg.ServerURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "papelaria.db", cfg.DBPath, "unset keys keep their defaults")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papelaria.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_url = \"https://file.example\"\n"), 0o644))
	t.Setenv("PAPELARIA_SERVER_URL", "https://env.example")
	t.Setenv("PAPELARIA_DEBUG", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.ServerURL)
	assert.True(t, cfg.Debug)
}
