package storage

import (
	"fmt"
	"strings"

	"github.com/seguraep/acm-reportes/internal/pkg/env"
)

// Config holds the S3-compatible object store settings.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
	Bucket          string
	PublicBaseURL   string
}

// LoadConfig reads the object-store configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Bucket:          env.GetEnv("S3_BUCKET", "acm-reportes"),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}
}

// IsEnabled reports whether credentials are configured.
func (c *Config) IsEnabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// ObjectURL builds the public URL stored alongside each attachment row.
func (c *Config) ObjectURL(key string) string {
	base := c.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
