package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, DefaultDisplayMaxRows, cfg.DisplayMaxRows)
	assert.Equal(t, DefaultDisplayPrecision, cfg.DisplayPrecision)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	cfg.DisplayMaxRows = -1
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.DisplayPrecision = -2
	assert.Error(t, cfg.Validate())
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Seed: 42}
	filled := cfg.WithDefaults()

	assert.Equal(t, int64(42), filled.Seed)
	assert.Equal(t, DefaultDisplayMaxRows, filled.DisplayMaxRows)
	assert.Equal(t, DefaultDisplayPrecision, filled.DisplayPrecision)
}

func TestGlobalConfig_SetGetReset(t *testing.T) {
	defer ResetGlobalConfig()

	cfg := NewConfig()
	cfg.Seed = 7
	SetGlobalConfig(cfg)
	assert.Equal(t, int64(7), GetGlobalConfig().Seed)

	ResetGlobalConfig()
	assert.Equal(t, int64(0), GetGlobalConfig().Seed)
}

func TestLoadFromJSON(t *testing.T) {
	data := []byte(`{"seed": 11, "display_max_rows": 10, "display_precision": 3}`)

	cfg, err := LoadFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, 10, cfg.DisplayMaxRows)
	assert.Equal(t, 3, cfg.DisplayPrecision)

	_, err = LoadFromJSON([]byte(`{`))
	assert.Error(t, err)
}

func TestLoadFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "okapi.yaml")
	content := "seed: 99\ndisplay_max_rows: 25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 25, cfg.DisplayMaxRows)
	// Unset precision falls back to the default.
	assert.Equal(t, DefaultDisplayPrecision, cfg.DisplayPrecision)
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "okapi.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 1"), 0o600))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OKAPI_SEED", "123")
	t.Setenv("OKAPI_DISPLAY_MAX_ROWS", "5")
	t.Setenv("OKAPI_DISPLAY_PRECISION", "2")

	cfg := LoadFromEnv()
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 5, cfg.DisplayMaxRows)
	assert.Equal(t, 2, cfg.DisplayPrecision)
}
