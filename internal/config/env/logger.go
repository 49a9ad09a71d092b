package env

import (
	"os"

	"prize_wheel/internal/config"
)

const (
	logModeEnvName  = "LOG_MODE"
	logLevelEnvName = "LOG_LEVEL"
	logDirEnvName   = "LOG_DIR"

	defaultLogLevel = "info"
	defaultLogDir   = "logs"
)

type logConfig struct {
	mode  string
	level string
	dir   string
}

// NewLogConfig never fails; unset variables fall back to dev mode, info level
// and ./logs.
func NewLogConfig() config.LogConfig {
	cfg := &logConfig{
		mode:  os.Getenv(logModeEnvName),
		level: os.Getenv(logLevelEnvName),
		dir:   os.Getenv(logDirEnvName),
	}
	if cfg.level == "" {
		cfg.level = defaultLogLevel
	}
	if cfg.dir == "" {
		cfg.dir = defaultLogDir
	}
	return cfg
}

func (c *logConfig) Mode() string  { return c.mode }
func (c *logConfig) Level() string { return c.level }
func (c *logConfig) Dir() string   { return c.dir }
