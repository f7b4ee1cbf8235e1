package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"prize_pool/internal/probability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngineConfig_Defaults(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, probability.DefaultParams(), cfg.Params())
	assert.Equal(t, 500, cfg.StatsWindow())
	assert.Equal(t, 25, cfg.DriftCheckPeriod())
	assert.Equal(t, 10.0, cfg.MaxDrift())
}

func TestParseEngineConfig_Overrides(t *testing.T) {
	data := []byte(`
engine:
  strategy: inverse_value
  min_probability: 20
  dynamic_edge: true
  house_edge: 750
  max_passes: 3
stats:
  window: 100
  max_drift: 2.5
`)
	cfg, err := ParseEngineConfig(data)
	require.NoError(t, err)

	params := cfg.Params()
	assert.Equal(t, probability.StrategyInverseValue, params.Strategy)
	assert.Equal(t, uint32(20), params.MinProbability)
	assert.True(t, params.DynamicEdge)
	assert.Equal(t, uint32(750), params.HouseEdge)
	assert.Equal(t, 3, params.MaxPasses)
	// Не указанное в файле берется по умолчанию
	assert.Equal(t, 1.5, params.Exponent)
	assert.Equal(t, uint32(2000), params.MaxHouseEdge)

	assert.Equal(t, 100, cfg.StatsWindow())
	assert.Equal(t, 25, cfg.DriftCheckPeriod())
	assert.Equal(t, 2.5, cfg.MaxDrift())
}

func TestParseEngineConfig_Invalid(t *testing.T) {
	_, err := ParseEngineConfig([]byte("engine:\n  strategy: cubic\n"))
	assert.ErrorIs(t, err, probability.ErrInvalidParams)

	_, err = ParseEngineConfig([]byte("engine:\n  min_probability: 0\n"))
	assert.ErrorIs(t, err, probability.ErrInvalidParams)

	_, err = ParseEngineConfig([]byte("stats:\n  window: 0\n"))
	assert.Error(t, err)

	_, err = ParseEngineConfig([]byte("engine: [broken"))
	assert.Error(t, err)
}

func TestNewEngineConfigFromYAML(t *testing.T) {
	cfg, err := NewEngineConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, probability.DefaultParams(), cfg.Params())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  exponent: 2\n"), 0o600))

	cfg, err = NewEngineConfigFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Params().Exponent)
}

func TestEngineConfigPath(t *testing.T) {
	t.Setenv(engineConfigEnvName, "")
	assert.Equal(t, "config.yaml", EngineConfigPath())

	t.Setenv(engineConfigEnvName, "/etc/pool/engine.yaml")
	assert.Equal(t, "/etc/pool/engine.yaml", EngineConfigPath())
}

func TestNewAppConfig(t *testing.T) {
	t.Setenv(logLevelEnvName, "")
	t.Setenv(currencyDecimalsEnvName, "")
	t.Setenv(vaultReserveEnvName, "")

	cfg, err := NewAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel())
	assert.Equal(t, int32(2), cfg.CurrencyDecimals())
	assert.Equal(t, uint64(0), cfg.VaultReserve())

	t.Setenv(logLevelEnvName, "debug")
	t.Setenv(currencyDecimalsEnvName, "9")
	t.Setenv(vaultReserveEnvName, "1000")

	cfg, err = NewAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel())
	assert.Equal(t, int32(9), cfg.CurrencyDecimals())
	assert.Equal(t, uint64(1000), cfg.VaultReserve())

	t.Setenv(currencyDecimalsEnvName, "40")
	_, err = NewAppConfig()
	assert.Error(t, err)

	t.Setenv(currencyDecimalsEnvName, "2")
	t.Setenv(vaultReserveEnvName, "-1")
	_, err = NewAppConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv(accessTokenKeyEnvName, "secret")
	t.Setenv(accessTokenDurationEnvName, "15m")
	t.Setenv(refreshTokenDurationEnvName, "720h")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), cfg.AccessTokenSecretKey())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenDuration())
	assert.Equal(t, 720*time.Hour, cfg.RefreshTokenDuration())

	t.Setenv(accessTokenDurationEnvName, "soon")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv(accessTokenDurationEnvName, "-1m")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	// refresh не длиннее access
	t.Setenv(accessTokenDurationEnvName, "1h")
	t.Setenv(refreshTokenDurationEnvName, "30m")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv(accessTokenKeyEnvName, "")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestNewHTTPConfig(t *testing.T) {
	t.Setenv(httpHostEnvName, "0.0.0.0")
	t.Setenv(httpPortEnvName, "8080")

	cfg, err := NewHTTPConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())

	t.Setenv(httpPortEnvName, "")
	_, err = NewHTTPConfig()
	assert.Error(t, err)
}

func TestNewNATSConfig(t *testing.T) {
	t.Setenv(natsURLEnvName, "")
	t.Setenv(natsSubjectPrefixEnvName, "")

	cfg, err := NewNATSConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.URL())
	assert.Equal(t, "prize_pool", cfg.SubjectPrefix())

	t.Setenv(natsURLEnvName, "nats://localhost:4222")
	t.Setenv(natsSubjectPrefixEnvName, "pools")

	cfg, err = NewNATSConfig()
	require.NoError(t, err)
	assert.Equal(t, "nats://localhost:4222", cfg.URL())
	assert.Equal(t, "pools", cfg.SubjectPrefix())
}

func TestNewPGConfig(t *testing.T) {
	t.Setenv(dsnName, "postgres://localhost/prize_pool")
	t.Setenv(pgMaxConnsName, "")

	cfg, err := NewPGConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/prize_pool", cfg.DSN())
	assert.Equal(t, int32(0), cfg.MaxConns())

	t.Setenv(pgMaxConnsName, "16")
	cfg, err = NewPGConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(16), cfg.MaxConns())

	t.Setenv(pgMaxConnsName, "many")
	_, err = NewPGConfig()
	assert.Error(t, err)

	t.Setenv(dsnName, "")
	_, err = NewPGConfig()
	assert.Error(t, err)
}
