package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentadmin/mediastore/pkg/mediastore"
	repomemory "github.com/contentadmin/mediastore/pkg/mediastore/repo/memory"
	repopg "github.com/contentadmin/mediastore/pkg/mediastore/repo/postgres"
	fsstorage "github.com/contentadmin/mediastore/pkg/mediastore/storage/fs"
	memorystorage "github.com/contentadmin/mediastore/pkg/mediastore/storage/memory"
	s3storage "github.com/contentadmin/mediastore/pkg/mediastore/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		BaseAddress:  "http://localhost:8080",
		DatabaseType: "memory",
		StorageType:  "memory",
		StorageDir:   "./data/media",
		StorageRoot:  "media",
	}
}

// ServerConfig represents server configuration for the mediastore service
type ServerConfig struct {
	Port        string `env:"PORT"`
	Environment string `env:"ENVIRONMENT"` // development, production, testing

	// BaseAddress fronts stored files when composing asset URLs
	BaseAddress string `env:"BASE_ADDRESS"`

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE"` // "memory", "postgres"

	// Storage configuration
	StorageType string `env:"STORAGE_TYPE"` // "memory", "fs", "s3"
	StorageDir  string `env:"STORAGE_DIR"`
	StorageRoot string `env:"STORAGE_ROOT"`

	// S3 storage options
	S3Region          string `env:"S3_REGION"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.DatabaseType {
	case "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database_url is required when using postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}

	switch c.StorageType {
	case "memory":
	case "fs":
		if c.StorageDir == "" {
			return errors.New("storage_dir is required when using fs storage")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("s3_bucket is required when using s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}

	return nil
}

// BuildCoordinator creates a Coordinator instance from the server configuration
func (c *ServerConfig) BuildCoordinator(logger *slog.Logger) (mediastore.Coordinator, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildAssetStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset store: %w", err)
	}

	return mediastore.New(
		mediastore.WithRepository(repo),
		mediastore.WithAssetStore(store),
		mediastore.WithLogger(logger),
		mediastore.WithBaseAddress(c.BaseAddress),
	)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (mediastore.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildAssetStore creates an AssetStore based on the configuration
func (c *ServerConfig) buildAssetStore() (mediastore.AssetStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:     c.StorageDir,
			StorageRoot: c.StorageRoot,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKeyID,
			SecretAccessKey:        c.S3SecretAccessKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			StorageRoot:            c.StorageRoot,
			CreateBucketIfNotExist: c.S3CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}
