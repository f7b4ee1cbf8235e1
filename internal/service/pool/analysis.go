package pool

import (
	"context"
	"math"

	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
)

const (
	// Горизонт для шанса выиграть хотя бы раз
	chanceSpins = 10
	// Целевой шанс и предел поиска числа спинов
	targetChance = 0.8
	maxSpins     = 1000
)

// Analysis Ожидаемые показатели по каждому предмету пула.
// Только для отчета, на выбор не влияет
func (s *serv) Analysis(ctx context.Context, poolID int64) ([]model.ItemAnalysis, error) {
	pool, err := s.poolRepo.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	analyses := probability.AnalyzePool(engineItems(pool.Items), pool.TicketPrice)

	result := make([]model.ItemAnalysis, len(analyses))
	for i, a := range analyses {
		result[i] = model.ItemAnalysis{
			ItemName:      a.ItemName,
			Value:         a.Value,
			Probability:   a.Probability,
			ExpectedSpins: a.ExpectedSpins,
			ExpectedCost:  a.ExpectedCost,
			Profit:        a.Profit,
			ProfitRatio:   a.ProfitRatio,
			ChanceIn10:    probability.ChanceWithin(a.Probability, chanceSpins),
		}
		if spins, ok := probability.SpinsForChance(a.Probability, targetChance, maxSpins); ok {
			result[i].SpinsFor80 = spins
		}

		var expectedSpins *float64
		if !math.IsInf(a.ExpectedSpins, 1) {
			spins := a.ExpectedSpins
			expectedSpins = &spins
		}
		s.emit(ctx, events.ProbabilityAnalysis, poolID, events.ProbabilityAnalysisData{
			ItemName:      a.ItemName,
			Value:         a.Value,
			Probability:   a.Probability,
			ExpectedSpins: expectedSpins,
			ExpectedCost:  a.ExpectedCost,
			Profit:        a.Profit,
			ProfitRatio:   a.ProfitRatio,
		})
	}

	return result, nil
}
