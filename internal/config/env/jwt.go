package env

import (
	"fmt"
	"os"
	"time"

	"prize_wheel/internal/config"
)

const (
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"

	minSecretLen                = 8
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 30 * 24 * time.Hour
)

type jwtConfig struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewJWTConfig reads the admin token settings. Only the signing secret is
// required.
func NewJWTConfig() (config.JWTConfig, error) {
	secret := os.Getenv(accessTokenKeyEnvName)
	if secret == "" {
		return nil, fmt.Errorf("%s not set", accessTokenKeyEnvName)
	}
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("%s must be at least %d bytes", accessTokenKeyEnvName, minSecretLen)
	}

	access, err := parseDuration(accessTokenDurationEnvName, os.Getenv(accessTokenDurationEnvName), defaultAccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := parseDuration(refreshTokenDurationEnvName, os.Getenv(refreshTokenDurationEnvName), defaultRefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	if refresh < access {
		return nil, fmt.Errorf("%s shorter than %s", refreshTokenDurationEnvName, accessTokenDurationEnvName)
	}

	return &jwtConfig{
		secret:          []byte(secret),
		accessDuration:  access,
		refreshDuration: refresh,
	}, nil
}

func (c *jwtConfig) AccessTokenSecretKey() []byte        { return c.secret }
func (c *jwtConfig) AccessTokenDuration() time.Duration  { return c.accessDuration }
func (c *jwtConfig) RefreshTokenDuration() time.Duration { return c.refreshDuration }
