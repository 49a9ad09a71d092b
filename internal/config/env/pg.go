package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"prize_wheel/internal/config"
)

const (
	pgDSNEnvName      = "PG_DSN"
	pgMaxConnsEnvName = "PG_MAX_CONNS"

	defaultPGMaxConns = 4
)

type pgConfig struct {
	dsn      string
	maxConns int32
}

// NewPGConfig reads the prize store connection. A kiosk needs few
// connections, so the pool defaults to four.
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(pgDSNEnvName)
	if dsn == "" {
		return nil, errors.New("pg dsn not found")
	}

	maxConns := int32(defaultPGMaxConns)
	if s := os.Getenv(pgMaxConnsEnvName); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q", pgMaxConnsEnvName, s)
		}
		maxConns = int32(n)
	}

	return &pgConfig{dsn: dsn, maxConns: maxConns}, nil
}

func (c *pgConfig) DSN() string     { return c.dsn }
func (c *pgConfig) MaxConns() int32 { return c.maxConns }
