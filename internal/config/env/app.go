package env

import (
	"fmt"
	"os"
	"strconv"

	"prize_pool/internal/config"
)

const (
	logLevelEnvName         = "LOG_LEVEL"
	currencyDecimalsEnvName = "CURRENCY_DECIMALS"
	vaultReserveEnvName     = "VAULT_RESERVE"

	defaultLogLevel         = "info"
	defaultCurrencyDecimals = 2
	maxCurrencyDecimals     = 18
)

type appConfig struct {
	logLevel         string
	currencyDecimals int32
	vaultReserve     uint64
}

func NewAppConfig() (config.AppConfig, error) {
	cfg := &appConfig{
		logLevel:         defaultLogLevel,
		currencyDecimals: defaultCurrencyDecimals,
	}

	if level := os.Getenv(logLevelEnvName); len(level) != 0 {
		cfg.logLevel = level
	}

	if decimals := os.Getenv(currencyDecimalsEnvName); len(decimals) != 0 {
		parsed, err := strconv.ParseInt(decimals, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid currency decimals: %w", err)
		}
		if parsed < 0 || parsed > maxCurrencyDecimals {
			return nil, fmt.Errorf("currency decimals must be in [0, %d], got %d", maxCurrencyDecimals, parsed)
		}
		cfg.currencyDecimals = int32(parsed)
	}

	if reserve := os.Getenv(vaultReserveEnvName); len(reserve) != 0 {
		parsed, err := strconv.ParseUint(reserve, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vault reserve: %w", err)
		}
		cfg.vaultReserve = parsed
	}

	return cfg, nil
}

func (cfg *appConfig) LogLevel() string {
	return cfg.logLevel
}

func (cfg *appConfig) CurrencyDecimals() int32 {
	return cfg.currencyDecimals
}

func (cfg *appConfig) VaultReserve() uint64 {
	return cfg.vaultReserve
}
