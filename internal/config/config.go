// Package config provides configuration management for okapi frame operations
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for okapi frame operations
type Config struct {
	// Randomness Configuration
	Seed int64 `json:"seed" yaml:"seed"` // Seed for Shuffle and Any (0 = nondeterministic)

	// Display Configuration
	DisplayMaxRows   int `json:"display_max_rows" yaml:"display_max_rows"`   // Maximum rows rendered by Render (0 = unlimited)
	DisplayPrecision int `json:"display_precision" yaml:"display_precision"` // Decimal digits used when rendering numbers
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultDisplayMaxRows   = 50
	DefaultDisplayPrecision = 6
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		Seed:             0, // Nondeterministic
		DisplayMaxRows:   DefaultDisplayMaxRows,
		DisplayPrecision: DefaultDisplayPrecision,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.DisplayMaxRows < 0 {
		return fmt.Errorf("DisplayMaxRows must be non-negative, got %d", c.DisplayMaxRows)
	}
	if c.DisplayPrecision < 0 {
		return fmt.Errorf("DisplayPrecision must be non-negative, got %d", c.DisplayPrecision)
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.DisplayMaxRows == 0 {
		c.DisplayMaxRows = defaults.DisplayMaxRows
	}
	if c.DisplayPrecision == 0 {
		c.DisplayPrecision = defaults.DisplayPrecision
	}

	// Seed keeps its zero value: 0 means nondeterministic by contract.

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// ResetGlobalConfig restores the global configuration to defaults
func ResetGlobalConfig() {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = NewConfig()
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("OKAPI_SEED"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Seed = parsed
		}
	}

	if val := os.Getenv("OKAPI_DISPLAY_MAX_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.DisplayMaxRows = parsed
		}
	}

	if val := os.Getenv("OKAPI_DISPLAY_PRECISION"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.DisplayPrecision = parsed
		}
	}

	return config
}
