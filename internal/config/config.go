// Package config resolves runtime configuration from the process environment.
package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the per-invocation configuration. The destination bucket is
// deliberately resolved on every invocation rather than at cold start: a
// misconfigured function should fail the invocation it was asked to serve,
// not crash-loop the runtime.
type Config struct {
	// DestBucket names the bucket that receives generated thumbnails.
	DestBucket string `envconfig:"DEST_BUCKET" required:"true"`
}

// ClientConfig tunes the S3 client and is resolved once at cold start.
// The zero value targets the regular AWS endpoint.
type ClientConfig struct {
	// Endpoint overrides the S3 endpoint for S3-compatible services
	// (localstack, minio). Empty means the default AWS endpoint.
	Endpoint string `envconfig:"AWS_ENDPOINT"`

	// UsePathStyle forces path-style addressing, which most
	// S3-compatible servers require.
	UsePathStyle bool `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

// Load reads the per-invocation configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	// envconfig treats a set-but-empty variable as present; an empty
	// bucket name is just as unusable as a missing one.
	if cfg.DestBucket == "" {
		return Config{}, errors.New("DEST_BUCKET environment variable is required")
	}
	return cfg, nil
}

// LoadClient reads the S3 client configuration from the environment.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	return cfg, nil
}
