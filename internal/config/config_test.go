package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultParallelThreshold, cfg.ParallelThreshold)
	assert.Equal(t, DefaultPreviewLimit, cfg.PreviewLimit)
	assert.Equal(t, 0, cfg.WorkerPoolSize)
	assert.Equal(t, 0, cfg.ChunkSize)
	assert.False(t, cfg.VerboseLogging)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero threshold", mutate: func(c *Config) { c.ParallelThreshold = 0 }, wantErr: true},
		{name: "negative pool size", mutate: func(c *Config) { c.WorkerPoolSize = -1 }, wantErr: true},
		{name: "negative chunk size", mutate: func(c *Config) { c.ChunkSize = -1 }, wantErr: true},
		{name: "zero preview limit", mutate: func(c *Config) { c.PreviewLimit = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, DefaultParallelThreshold, cfg.ParallelThreshold)
	assert.Equal(t, DefaultPreviewLimit, cfg.PreviewLimit)

	custom := Config{ParallelThreshold: 100, PreviewLimit: 5}.WithDefaults()
	assert.Equal(t, 100, custom.ParallelThreshold)
	assert.Equal(t, 5, custom.PreviewLimit)
}

func TestGlobalConfig(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	cfg := NewConfig()
	cfg.ParallelThreshold = 123
	SetGlobalConfig(cfg)
	assert.Equal(t, 123, GetGlobalConfig().ParallelThreshold)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explorer.yaml")
	content := "parallel_threshold: 5000\npreview_limit: 10\nverbose_logging: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ParallelThreshold)
	assert.Equal(t, 10, cfg.PreviewLimit)
	assert.True(t, cfg.VerboseLogging)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXPLORER_PARALLEL_THRESHOLD", "2000")
	t.Setenv("EXPLORER_WORKER_POOL_SIZE", "4")
	t.Setenv("EXPLORER_PREVIEW_LIMIT", "25")
	t.Setenv("EXPLORER_VERBOSE_LOGGING", "true")

	cfg := LoadFromEnv()
	assert.Equal(t, 2000, cfg.ParallelThreshold)
	assert.Equal(t, 4, cfg.WorkerPoolSize)
	assert.Equal(t, 25, cfg.PreviewLimit)
	assert.True(t, cfg.VerboseLogging)
}

func TestLoadFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("EXPLORER_PARALLEL_THRESHOLD", "not-a-number")
	cfg := LoadFromEnv()
	assert.Equal(t, DefaultParallelThreshold, cfg.ParallelThreshold)
}
