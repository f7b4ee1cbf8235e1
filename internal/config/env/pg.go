package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"prize_pool/internal/config"
)

const (
	dsnName        = "PG_DSN"
	pgMaxConnsName = "PG_MAX_CONNS"
)

type pgConfig struct {
	dsn      string
	maxConns int32
}

// NewPGConfig PG_MAX_CONNS необязателен, 0 оставляет размер пула pgx по умолчанию
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	cfg := &pgConfig{dsn: dsn}

	if raw := os.Getenv(pgMaxConnsName); len(raw) != 0 {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s: %q", pgMaxConnsName, raw)
		}
		cfg.maxConns = int32(n)
	}

	return cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}
