package publisher

import (
	"errors"
	"strings"

	"github.com/progen-app/progen/internal/pkg/env"
)

// Config holds the S3 site-hosting configuration.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // optional, for S3-compatible services
	PublicBaseURL   string // optional, CDN or website endpoint serving the bucket
}

// LoadConfig reads the site-hosting configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   strings.TrimRight(env.GetEnv("SITE_PUBLIC_BASE_URL", ""), "/"),
	}

	if cfg.AccessKeyID == "" {
		return nil, errors.New("S3_ACCESS_KEY_ID is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("S3_SECRET_ACCESS_KEY is required")
	}
	if cfg.BucketName == "" {
		return nil, errors.New("S3_BUCKET_NAME is required")
	}
	return cfg, nil
}
