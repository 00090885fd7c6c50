package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentadmin/mediastore/pkg/mediastore/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "http://localhost:8080", cfg.BaseAddress)
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "fs")
	t.Setenv("STORAGE_DIR", t.TempDir())
	t.Setenv("BASE_ADDRESS", "https://admin.example.com")

	cfg, err := config.Load(config.WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "fs", cfg.StorageType)
	assert.Equal(t, "https://admin.example.com", cfg.BaseAddress)
	// Untouched fields keep their defaults.
	assert.Equal(t, "memory", cfg.DatabaseType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.ServerConfig)
		wantErr string
	}{
		{
			name:    "postgres requires database url",
			mutate:  func(c *config.ServerConfig) { c.DatabaseType = "postgres" },
			wantErr: "database_url",
		},
		{
			name:    "unknown database type",
			mutate:  func(c *config.ServerConfig) { c.DatabaseType = "cassandra" },
			wantErr: "unsupported database type",
		},
		{
			name: "fs requires storage dir",
			mutate: func(c *config.ServerConfig) {
				c.StorageType = "fs"
				c.StorageDir = ""
			},
			wantErr: "storage_dir",
		},
		{
			name:    "s3 requires bucket",
			mutate:  func(c *config.ServerConfig) { c.StorageType = "s3" },
			wantErr: "s3_bucket",
		},
		{
			name:    "unknown storage type",
			mutate:  func(c *config.ServerConfig) { c.StorageType = "tape" },
			wantErr: "unsupported storage type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(func(c *config.ServerConfig) error {
				tt.mutate(c)
				return nil
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildCoordinator(t *testing.T) {
	t.Run("memory adapters", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		coordinator, err := cfg.BuildCoordinator(slog.Default())
		require.NoError(t, err)
		assert.NotNil(t, coordinator)
	})

	t.Run("fs storage", func(t *testing.T) {
		cfg, err := config.Load(func(c *config.ServerConfig) error {
			c.StorageType = "fs"
			c.StorageDir = t.TempDir()
			return nil
		})
		require.NoError(t, err)

		coordinator, err := cfg.BuildCoordinator(slog.Default())
		require.NoError(t, err)
		assert.NotNil(t, coordinator)
	})
}
