package pool

import (
	"context"

	"prize_pool/internal/model"
)

// Stats Снимок статистики RTP. Для пула без спинов возвращается нулевая статистика
func (s *serv) Stats(ctx context.Context, poolID int64) (*model.PoolStats, error) {
	state, ok := s.statsRepo.Snapshot(poolID)
	if !ok {
		// Статистика в памяти: после рестарта пул регистрируется заново
		pool, err := s.poolRepo.GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		s.statsRepo.RegisterPool(poolID, expectedRTP(pool))
		state, _ = s.statsRepo.Snapshot(poolID)
	}

	return &model.PoolStats{
		PoolID:       poolID,
		TotalSpins:   state.TotalSpins,
		TotalRevenue: state.TotalRevenue,
		TotalPayout:  state.TotalPayout,
		CurrentRTP:   state.CurrentRTP,
		ExpectedRTP:  state.ExpectedRTP,
		WindowRTP:    state.WindowRTP,
		WindowSpins:  len(state.SpinWindow),
		Drifting:     state.Drifting,
		DriftEvents:  len(state.Adjustments),
	}, nil
}
