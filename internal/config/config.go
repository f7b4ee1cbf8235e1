package config

import (
	"time"

	"prize_pool/internal/probability"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

// NATSConfig Пустой URL означает, что события не публикуются
type NATSConfig interface {
	URL() string
	SubjectPrefix() string
}

type AuditConfig interface {
	Dir() string
}

type AppConfig interface {
	LogLevel() string
	CurrencyDecimals() int32
	VaultReserve() uint64
}

type EngineConfig interface {
	Params() probability.Params
	StatsWindow() int
	DriftCheckPeriod() int
	MaxDrift() float64
}
