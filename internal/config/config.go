// Package config provides configuration management for Explorer series operations
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for Explorer series operations
type Config struct {
	// Parallel Processing Configuration
	ParallelThreshold int `yaml:"parallel_threshold"` // Minimum elements to trigger parallel kernels
	WorkerPoolSize    int `yaml:"worker_pool_size"`   // Number of worker goroutines (0 = auto-detect)
	ChunkSize         int `yaml:"chunk_size"`         // Size of element chunks for parallel kernels (0 = auto-calculate)

	// Display Configuration
	PreviewLimit int `yaml:"preview_limit"` // Maximum elements shown by Series.String

	// Debugging Configuration
	VerboseLogging bool `yaml:"verbose_logging"` // Enable verbose logging
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultParallelThreshold = 10000
	DefaultPreviewLimit      = 50
)

func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		ParallelThreshold: DefaultParallelThreshold,
		WorkerPoolSize:    0, // Auto-detect
		ChunkSize:         0, // Auto-calculate
		PreviewLimit:      DefaultPreviewLimit,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.ParallelThreshold <= 0 {
		return fmt.Errorf("ParallelThreshold must be positive, got %d", c.ParallelThreshold)
	}
	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("WorkerPoolSize must be non-negative, got %d", c.WorkerPoolSize)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("ChunkSize must be non-negative, got %d", c.ChunkSize)
	}
	if c.PreviewLimit <= 0 {
		return fmt.Errorf("PreviewLimit must be positive, got %d", c.PreviewLimit)
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = defaults.ParallelThreshold
	}
	if c.PreviewLimit == 0 {
		c.PreviewLimit = defaults.PreviewLimit
	}

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

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("EXPLORER_PARALLEL_THRESHOLD"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.ParallelThreshold = parsed
		}
	}
	if val := os.Getenv("EXPLORER_WORKER_POOL_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.WorkerPoolSize = parsed
		}
	}
	if val := os.Getenv("EXPLORER_CHUNK_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.ChunkSize = parsed
		}
	}
	if val := os.Getenv("EXPLORER_PREVIEW_LIMIT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.PreviewLimit = parsed
		}
	}
	if val := os.Getenv("EXPLORER_VERBOSE_LOGGING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.VerboseLogging = parsed
		}
	}

	return config
}
