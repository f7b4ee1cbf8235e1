// Package probability распределяет бюджет в 10000 базисных пунктов между предметами пула
// и выбирает выигрышный предмет по сиду. Пакет не хранит состояния и не делает I/O.
package probability

import (
	"math"
	"math/bits"
)

// Input Предмет на входе распределителя
type Input struct {
	Name  string
	Value uint64
}

// Allocation Результат распределения
type Allocation struct {
	// Вероятности в базисных пунктах, в порядке входных предметов. Сумма ровно 10000.
	Probabilities []uint32
	// House edge, с которым посчитан итоговый вектор
	HouseEdge uint32
	// Сколько раз пересчитывались веса
	Passes int
	// Порог не сошелся за MaxPasses и применено одношаговое масштабирование
	Fallback bool
}

// Allocate считает вектор вероятностей для предметов пула.
//
// Округление каждого элемента независимо, поэтому последний по порядку
// (не прижатый к порогу) предмет получает остаток 10000 - сумма остальных.
// Это намеренное правило: смещение в пользу последнего предмета не больше n-1 пунктов.
func Allocate(items []Input, ticketPrice uint64, params Params) (Allocation, error) {
	if err := params.Validate(); err != nil {
		return Allocation{}, err
	}
	if len(items) == 0 {
		return Allocation{}, ErrEmptyItems
	}
	if len(items) > MaxItems {
		return Allocation{}, ErrTooManyItems
	}
	if ticketPrice == 0 {
		return Allocation{}, ErrInvalidPrice
	}
	for _, item := range items {
		if item.Value == 0 {
			return Allocation{}, ErrInvalidPrice
		}
	}

	edge := params.HouseEdge
	if params.DynamicEdge {
		edge = clampEdge(edge, params)
	}

	var (
		probs    []uint32
		fallback bool
		passes   int
	)
	for passes = 1; ; passes++ {
		weights, rawTotal, err := weigh(items, ticketPrice, edge, params)
		if err != nil {
			return Allocation{}, err
		}

		probs, fallback, err = distribute(weights, params)
		if err != nil {
			return Allocation{}, err
		}

		if !params.DynamicEdge || passes >= params.MaxPasses {
			break
		}

		next, changed := adjustEdge(edge, probs, rawTotal, params)
		if !changed {
			break
		}
		edge = next
	}

	if err := checkInvariant(probs, params.MinProbability); err != nil {
		return Allocation{}, err
	}

	return Allocation{
		Probabilities: probs,
		HouseEdge:     edge,
		Passes:        passes,
		Fallback:      fallback,
	}, nil
}

// SumValues складывает стоимости с проверкой переполнения
func SumValues(values []uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		var carry uint64
		total, carry = bits.Add64(total, v, 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
	}
	return total, nil
}

// weigh возвращает веса предметов и "сырую" сумму абсолютных вероятностей (10000 * Σw).
// Edge прибавляется к стоимости предмета в билетах: чем он больше, тем площе распределение.
func weigh(items []Input, ticketPrice uint64, edge uint32, params Params) ([]float64, float64, error) {
	shift := float64(edge) / float64(BasisPoints)
	weights := make([]float64, len(items))

	var total float64
	for i, item := range items {
		ratio := float64(item.Value)/float64(ticketPrice) + shift

		var w float64
		switch params.Strategy {
		case StrategyInverseValue:
			w = 1 / ratio
		default:
			w = 1 / math.Pow(ratio, params.Exponent)
		}

		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, 0, ErrOverflow
		}
		weights[i] = w
		total += w
	}

	if math.IsInf(total, 0) {
		return nil, 0, ErrOverflow
	}

	return weights, total * float64(BasisPoints), nil
}

// distribute раскладывает 10000 пунктов по весам с учетом минимального порога.
// Предметы ниже порога прижимаются к нему, остальные перенормируются на оставшийся бюджет.
func distribute(weights []float64, params Params) ([]uint32, bool, error) {
	n := len(weights)
	floor := int64(params.MinProbability)
	pinned := make([]bool, n)
	pinnedCount := 0

	for pass := 0; pass < params.MaxPasses; pass++ {
		budget := int64(BasisPoints) - floor*int64(pinnedCount)
		shares := normalize(weights, pinned, budget)

		below := false
		for i, s := range shares {
			if !pinned[i] && s < floor {
				pinned[i] = true
				pinnedCount++
				below = true
			}
		}
		if below {
			continue
		}

		probs := make([]uint32, n)
		for i := range shares {
			if pinned[i] {
				probs[i] = uint32(floor)
				continue
			}
			if shares[i] > int64(BasisPoints) {
				return nil, false, ErrOverflow
			}
			probs[i] = uint32(shares[i])
		}
		return probs, false, nil
	}

	probs, err := scaleAndFloor(weights, params.MinProbability)
	return probs, true, err
}

// normalize округляет доли свободных предметов, последний свободный получает остаток
func normalize(weights []float64, pinned []bool, budget int64) []int64 {
	var sum float64
	last := -1
	for i, w := range weights {
		if pinned[i] {
			continue
		}
		sum += w
		last = i
	}

	shares := make([]int64, len(weights))
	if last < 0 {
		return shares
	}

	var running int64
	for i, w := range weights {
		if pinned[i] || i == last {
			continue
		}
		s := int64(math.Round(w / sum * float64(budget)))
		shares[i] = s
		running += s
	}
	shares[last] = budget - running

	return shares
}

// scaleAndFloor Одношаговый запасной вариант: каждому порог, остаток делится по весам
// с отбрасыванием дробной части, последний предмет получает то, что осталось.
func scaleAndFloor(weights []float64, minProbability uint32) ([]uint32, error) {
	n := len(weights)
	floor := uint64(minProbability)
	if floor*uint64(n) > uint64(BasisPoints) {
		return nil, ErrOverflow
	}
	rest := uint64(BasisPoints) - floor*uint64(n)

	var sum float64
	for _, w := range weights {
		sum += w
	}

	probs := make([]uint32, n)
	var running uint64
	for i := 0; i < n-1; i++ {
		extra := uint64(math.Floor(weights[i] / sum * float64(rest)))
		if running+extra > rest {
			extra = rest - running
		}
		running += extra
		probs[i] = uint32(floor + extra)
	}
	probs[n-1] = uint32(floor + rest - running)

	return probs, nil
}

// adjustEdge решает, нужен ли еще один проход с другим edge.
// Доминирующий предмет повышает edge, недобор сырой суммы понижает.
func adjustEdge(edge uint32, probs []uint32, rawTotal float64, params Params) (uint32, bool) {
	if len(probs) > 1 && maxOf(probs) > params.MaxShare {
		if edge >= params.MaxHouseEdge {
			return edge, false
		}
		return min(edge+params.EdgeStep, params.MaxHouseEdge), true
	}

	if rawTotal < float64(BasisPoints) {
		if edge <= params.MinHouseEdge {
			return edge, false
		}
		if edge-params.MinHouseEdge < params.EdgeStep {
			return params.MinHouseEdge, true
		}
		return edge - params.EdgeStep, true
	}

	return edge, false
}

func clampEdge(edge uint32, params Params) uint32 {
	return max(params.MinHouseEdge, min(edge, params.MaxHouseEdge))
}

// checkInvariant проверка перед фиксацией: сумма ровно 10000, каждый не ниже порога
func checkInvariant(probs []uint32, minProbability uint32) error {
	var total uint64
	for _, p := range probs {
		if p < minProbability {
			return ErrProbabilityInvariant
		}
		total += uint64(p)
	}
	if total != uint64(BasisPoints) {
		return ErrProbabilityInvariant
	}
	return nil
}

func maxOf(values []uint32) uint32 {
	var m uint32
	for _, v := range values {
		m = max(m, v)
	}
	return m
}
