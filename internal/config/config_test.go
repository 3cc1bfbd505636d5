package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("missing file loads as empty config", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("save then load preserves every field", func(t *testing.T) {
		saved := &Config{
			AWSProfile:    "staging",
			AWSRegion:     "eu-west-1",
			DefaultOutput: "json",
		}
		require.NoError(t, SaveConfig(saved))

		loaded, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("set profile keeps other fields intact", func(t *testing.T) {
		require.NoError(t, SetProfile("production"))

		loaded, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "production", loaded.AWSProfile)
		assert.Equal(t, "eu-west-1", loaded.AWSRegion)
		assert.Equal(t, "json", loaded.DefaultOutput)

		assert.Equal(t, "production", GetSavedProfile())
		assert.Equal(t, "json", GetDefaultOutput())
	})
}

func TestLoadConfig_Malformed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.MkdirAll(GetConfigDir(), 0755))
	require.NoError(t, os.WriteFile(GetConfigPath(), []byte("{not yaml"), 0644))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")

	assert.Equal(t, filepath.Join("/home/someone", ".sm2env", "config.yaml"), GetConfigPath())
}
