package storage

import (
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
)

// Config holds the S3 settings for media uploads (contestant photos,
// vendor logos, sponsor banners).
type Config struct {
	Enabled         bool
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	EndpointURL     string
	PublicBaseURL   string
}

// LoadConfig reads the media storage configuration from the environment
func LoadConfig() *Config {
	return &Config{
		Enabled:         env.GetEnvBool("S3_MEDIA_ENABLED", false),
		Region:          env.GetEnv("S3_MEDIA_REGION", "eu-central-1"),
		AccessKeyID:     env.GetEnv("S3_MEDIA_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_MEDIA_SECRET_ACCESS_KEY", ""),
		Bucket:          env.GetEnv("S3_MEDIA_BUCKET", "festhive-media"),
		EndpointURL:     env.GetEnv("S3_MEDIA_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_MEDIA_PUBLIC_URL", ""),
	}
}

// IsEnabled reports whether uploads should go to S3 at all
func (c *Config) IsEnabled() bool {
	return c.Enabled && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}
