package probability

import "fmt"

const (
	// BasisPoints 100% = 10000 базисных пунктов
	BasisPoints uint32 = 10000
	// MaxItems Максимальное количество предметов в пуле
	MaxItems = 10
)

// Strategy Функция веса предмета. Выбирается один раз в конфигурации,
// инварианты суммы и минимального порога одинаковы для всех стратегий.
type Strategy string

const (
	// StrategyPowerLaw вес = 1 / (value/price + edge)^exponent
	StrategyPowerLaw Strategy = "power_law"
	// StrategyInverseValue вес = 1 / (value/price + edge)
	StrategyInverseValue Strategy = "inverse_value"
)

// Params Параметры распределения вероятностей
type Params struct {
	Strategy Strategy
	// Показатель степени для StrategyPowerLaw
	Exponent float64
	// Минимальная вероятность предмета в базисных пунктах
	MinProbability uint32

	// DynamicEdge включает подстройку house edge с повторным пересчетом.
	// Если выключено, HouseEdge применяется как есть.
	DynamicEdge  bool
	HouseEdge    uint32
	MinHouseEdge uint32
	MaxHouseEdge uint32
	EdgeStep     uint32
	// Доля одного предмета, выше которой edge повышается
	MaxShare uint32

	// Предел повторных проходов (и для порога, и для house edge)
	MaxPasses int
}

// DefaultParams Параметры по умолчанию: степень 1.5, порог 0.5%, edge выключен
func DefaultParams() Params {
	return Params{
		Strategy:       StrategyPowerLaw,
		Exponent:       1.5,
		MinProbability: 50,
		DynamicEdge:    false,
		HouseEdge:      0,
		MinHouseEdge:   500,
		MaxHouseEdge:   2000,
		EdgeStep:       250,
		MaxShare:       5000,
		MaxPasses:      5,
	}
}

// Validate проверяет согласованность параметров
func (p Params) Validate() error {
	switch p.Strategy {
	case StrategyPowerLaw:
		if p.Exponent <= 0 {
			return fmt.Errorf("%w: exponent must be positive", ErrInvalidParams)
		}
	case StrategyInverseValue:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidParams, p.Strategy)
	}

	// Порог должен помещаться в бюджет даже при максимальном числе предметов
	if p.MinProbability == 0 || p.MinProbability*MaxItems > BasisPoints {
		return fmt.Errorf("%w: min probability must be in [1, %d]", ErrInvalidParams, BasisPoints/MaxItems)
	}

	if p.HouseEdge >= BasisPoints {
		return fmt.Errorf("%w: house edge must be below %d", ErrInvalidParams, BasisPoints)
	}

	if p.MaxPasses < 1 {
		return fmt.Errorf("%w: max passes must be at least 1", ErrInvalidParams)
	}

	if p.DynamicEdge {
		if p.MinHouseEdge > p.MaxHouseEdge || p.MaxHouseEdge >= BasisPoints {
			return fmt.Errorf("%w: house edge band [%d, %d] is invalid", ErrInvalidParams, p.MinHouseEdge, p.MaxHouseEdge)
		}
		if p.EdgeStep == 0 {
			return fmt.Errorf("%w: edge step must be positive", ErrInvalidParams)
		}
		if p.MaxShare == 0 || p.MaxShare > BasisPoints {
			return fmt.Errorf("%w: max share must be in [1, %d]", ErrInvalidParams, BasisPoints)
		}
	}

	return nil
}
