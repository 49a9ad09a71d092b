package env

import (
	"os"

	"prize_wheel/internal/config"
)

const (
	iconBucketEnvName   = "ICON_BUCKET"
	iconRegionEnvName   = "ICON_REGION"
	iconEndpointEnvName = "ICON_ENDPOINT"
	iconDirEnvName      = "ICON_DIR"
)

type iconConfig struct {
	bucket   string
	region   string
	endpoint string
	dir      string
}

func NewIconConfig() config.IconConfig {
	return &iconConfig{
		bucket:   os.Getenv(iconBucketEnvName),
		region:   os.Getenv(iconRegionEnvName),
		endpoint: os.Getenv(iconEndpointEnvName),
		dir:      os.Getenv(iconDirEnvName),
	}
}

func (c *iconConfig) Bucket() string   { return c.bucket }
func (c *iconConfig) Region() string   { return c.region }
func (c *iconConfig) Endpoint() string { return c.endpoint }
func (c *iconConfig) Dir() string      { return c.dir }
