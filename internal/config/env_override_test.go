package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("theme and language are lowercased", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONETHING_THEME", "DARK")
		t.Setenv("ONETHING_LANG", "FR")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, "fr", cfg.UI.Language)
	})

	t.Run("debug and samples parse booleans", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONETHING_DEBUG", "true")
		t.Setenv("ONETHING_SAMPLES", "1")
		t.Setenv("ONETHING_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
		assert.True(t, cfg.Board.SeedSamples)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("garbage booleans are ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONETHING_DEBUG", "sometimes")

		cfg := DefaultConfig()
		cfg.Logging.DebugMode = true
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("empty values leave config alone", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.UI.Theme = "light"
		cfg.applyEnvOverrides()

		assert.Equal(t, "light", cfg.UI.Theme)
	})
}

func TestLoad_DotEnvNextToConfig(t *testing.T) {
	// Register restoration, then unset so godotenv is allowed to fill it.
	t.Setenv("ONETHING_LANG", "")
	require.NoError(t, os.Unsetenv("ONETHING_LANG"))
	t.Setenv("ONETHING_THEME", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ONETHING_LANG=fr\nONETHING_THEME=dark\n"), 0644))

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.UI.Language)
	// Already present in the environment, so the .env value does not win.
	assert.Equal(t, "auto", cfg.UI.Theme)
}
