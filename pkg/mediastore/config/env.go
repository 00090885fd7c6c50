package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides.
//
// Environment variable mapping:
//
//	PORT                  - Server port (default: "8080")
//	ENVIRONMENT           - Runtime environment (default: "development")
//	BASE_ADDRESS          - Public base address for asset URLs
//	DATABASE_TYPE         - "memory" or "postgres" (default: "memory")
//	DATABASE_URL          - Connection string when DATABASE_TYPE=postgres
//	STORAGE_TYPE          - "memory", "fs" or "s3" (default: "memory")
//	STORAGE_DIR           - Base directory for fs storage
//	STORAGE_ROOT          - URL path segment / key prefix (default: "media")
//	S3_REGION, S3_BUCKET, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY,
//	S3_ENDPOINT, S3_USE_PATH_STYLE, S3_CREATE_BUCKET
func WithEnv() Option {
	return func(c *ServerConfig) error {
		return cleanenv.ReadEnv(c)
	}
}
