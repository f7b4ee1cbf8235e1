package env

import (
	"fmt"
	"os"

	"prize_pool/internal/config"
	"prize_pool/internal/probability"

	"gopkg.in/yaml.v3"
)

const (
	engineConfigEnvName = "ENGINE_CONFIG"
	defaultEngineConfig = "config.yaml"

	defaultStatsWindow      = 500
	defaultDriftCheckPeriod = 25
	defaultMaxDrift         = 10.0
)

// Поля-указатели: отсутствующий в файле ключ оставляет значение по умолчанию
type engineFile struct {
	Engine struct {
		Strategy       *string  `yaml:"strategy"`
		Exponent       *float64 `yaml:"exponent"`
		MinProbability *uint32  `yaml:"min_probability"`
		DynamicEdge    *bool    `yaml:"dynamic_edge"`
		HouseEdge      *uint32  `yaml:"house_edge"`
		MinHouseEdge   *uint32  `yaml:"min_house_edge"`
		MaxHouseEdge   *uint32  `yaml:"max_house_edge"`
		EdgeStep       *uint32  `yaml:"edge_step"`
		MaxShare       *uint32  `yaml:"max_share"`
		MaxPasses      *int     `yaml:"max_passes"`
	} `yaml:"engine"`
	Stats struct {
		Window      *int     `yaml:"window"`
		CheckPeriod *int     `yaml:"check_period"`
		MaxDrift    *float64 `yaml:"max_drift"`
	} `yaml:"stats"`
}

type engineConfig struct {
	params           probability.Params
	statsWindow      int
	driftCheckPeriod int
	maxDrift         float64
}

// EngineConfigPath Путь к YAML с параметрами движка из ENGINE_CONFIG
func EngineConfigPath() string {
	path := os.Getenv(engineConfigEnvName)
	if len(path) == 0 {
		return defaultEngineConfig
	}
	return path
}

// NewEngineConfigFromYAML читает параметры распределения и статистики из файла.
// Отсутствующий файл не ошибка: используются значения по умолчанию.
func NewEngineConfigFromYAML(path string) (config.EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultEngineConfigValue(), nil
		}
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}

	return ParseEngineConfig(data)
}

// ParseEngineConfig разбирает YAML и проверяет параметры
func ParseEngineConfig(data []byte) (config.EngineConfig, error) {
	var file engineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	cfg := defaultEngineConfigValue()

	e := file.Engine
	if e.Strategy != nil {
		cfg.params.Strategy = probability.Strategy(*e.Strategy)
	}
	setIf(&cfg.params.Exponent, e.Exponent)
	setIf(&cfg.params.MinProbability, e.MinProbability)
	setIf(&cfg.params.DynamicEdge, e.DynamicEdge)
	setIf(&cfg.params.HouseEdge, e.HouseEdge)
	setIf(&cfg.params.MinHouseEdge, e.MinHouseEdge)
	setIf(&cfg.params.MaxHouseEdge, e.MaxHouseEdge)
	setIf(&cfg.params.EdgeStep, e.EdgeStep)
	setIf(&cfg.params.MaxShare, e.MaxShare)
	setIf(&cfg.params.MaxPasses, e.MaxPasses)

	setIf(&cfg.statsWindow, file.Stats.Window)
	setIf(&cfg.driftCheckPeriod, file.Stats.CheckPeriod)
	setIf(&cfg.maxDrift, file.Stats.MaxDrift)

	if err := cfg.params.Validate(); err != nil {
		return nil, err
	}
	if cfg.statsWindow <= 0 {
		return nil, fmt.Errorf("stats window must be positive, got %d", cfg.statsWindow)
	}
	if cfg.driftCheckPeriod <= 0 {
		return nil, fmt.Errorf("stats check period must be positive, got %d", cfg.driftCheckPeriod)
	}
	if cfg.maxDrift <= 0 {
		return nil, fmt.Errorf("stats max drift must be positive, got %v", cfg.maxDrift)
	}

	return cfg, nil
}

func defaultEngineConfigValue() *engineConfig {
	return &engineConfig{
		params:           probability.DefaultParams(),
		statsWindow:      defaultStatsWindow,
		driftCheckPeriod: defaultDriftCheckPeriod,
		maxDrift:         defaultMaxDrift,
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (cfg *engineConfig) Params() probability.Params {
	return cfg.params
}

func (cfg *engineConfig) StatsWindow() int {
	return cfg.statsWindow
}

func (cfg *engineConfig) DriftCheckPeriod() int {
	return cfg.driftCheckPeriod
}

// MaxDrift Допустимое отклонение RTP окна от ожидаемого, в процентных пунктах
func (cfg *engineConfig) MaxDrift() float64 {
	return cfg.maxDrift
}
