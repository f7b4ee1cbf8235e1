package probability

import "math"

// Analysis Ожидаемые показатели предмета. Только для отчетов, на выбор не влияет.
type Analysis struct {
	ItemName    string
	Value       uint64
	Probability uint32

	// +Inf, если вероятность равна нулю
	ExpectedSpins float64
	// nil означает "не определено"
	ExpectedCost *float64
	Profit       *float64
	ProfitRatio  *float64
}

// Defined false, когда вероятность нулевая и денежные поля не посчитаны
func (a Analysis) Defined() bool {
	return a.ExpectedCost != nil
}

// Analyze считает ожидаемое число спинов до выигрыша предмета и выгоду участника
func Analyze(name string, value uint64, probability uint32, ticketPrice uint64) Analysis {
	a := Analysis{
		ItemName:    name,
		Value:       value,
		Probability: probability,
	}

	if probability == 0 {
		a.ExpectedSpins = math.Inf(1)
		return a
	}

	spins := float64(BasisPoints) / float64(probability)
	cost := spins * float64(ticketPrice)
	profit := float64(value) - cost

	a.ExpectedSpins = spins
	a.ExpectedCost = &cost
	a.Profit = &profit
	if cost != 0 {
		ratio := profit / cost
		a.ProfitRatio = &ratio
	}

	return a
}

// AnalyzePool Analyze для каждого предмета пула
func AnalyzePool(items []Item, ticketPrice uint64) []Analysis {
	result := make([]Analysis, len(items))
	for i, item := range items {
		result[i] = Analyze(item.Name, item.Value, item.Probability, ticketPrice)
	}
	return result
}

// ChanceWithin вероятность выиграть предмет хотя бы раз за spins спинов: 1 - (1-p)^k
func ChanceWithin(probability uint32, spins int) float64 {
	if spins <= 0 || probability == 0 {
		return 0
	}
	p := float64(probability) / float64(BasisPoints)
	return 1 - math.Pow(1-p, float64(spins))
}

// SpinsForChance минимальное число спинов, при котором шанс выиграть предмет достигает target.
// false, если за maxSpins цель не достигается.
func SpinsForChance(probability uint32, target float64, maxSpins int) (int, bool) {
	for spins := 1; spins <= maxSpins; spins++ {
		if ChanceWithin(probability, spins) >= target {
			return spins, true
		}
	}
	return 0, false
}

// ExpectedPayout ожидаемая стоимость выигрыша за один спин по доступным предметам
func ExpectedPayout(items []Item) float64 {
	var weighted, total float64
	for _, item := range items {
		if !item.Available || item.Probability == 0 {
			continue
		}
		weighted += float64(item.Probability) * float64(item.Value)
		total += float64(item.Probability)
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}
