package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"prize_pool/internal/config"
)

const (
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
)

type jwtConfig struct {
	refreshTokenDuration time.Duration
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, errors.New("access token secret key not found")
	}

	accessTTL, err := durationFromEnv(accessTokenDurationEnvName)
	if err != nil {
		return nil, err
	}

	refreshTTL, err := durationFromEnv(refreshTokenDurationEnvName)
	if err != nil {
		return nil, err
	}

	// Иначе refresh истекает раньше, чем его можно применить
	if refreshTTL <= accessTTL {
		return nil, fmt.Errorf("%s (%s) must be longer than %s (%s)",
			refreshTokenDurationEnvName, refreshTTL, accessTokenDurationEnvName, accessTTL)
	}

	return &jwtConfig{
		accessTokenSecretKey: accessToken,
		refreshTokenDuration: refreshTTL,
		accessTokenDuration:  accessTTL,
	}, nil
}

// durationFromEnv обязательная положительная длительность в формате time.ParseDuration
func durationFromEnv(name string) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return 0, fmt.Errorf("%s not found", name)
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
