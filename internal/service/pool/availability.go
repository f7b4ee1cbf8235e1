package pool

import (
	"context"

	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/pkg/logger"
)

// SetItemAvailability включает или исключает предмет из будущих спинов.
// Сохраненные вероятности не пересчитываются
func (s *serv) SetItemAvailability(ctx context.Context, poolID int64, index int, available bool) (*model.Pool, error) {
	authorityID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var pool *model.Pool

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err = s.poolRepo.LockPool(txCtx, poolID)
		if err != nil {
			return err
		}
		if pool.AuthorityID != authorityID {
			return model.ErrUnauthorized
		}
		if index < 0 || index >= len(pool.Items) {
			return model.ErrItemNotFound
		}

		if err := s.poolRepo.SetItemAvailability(txCtx, poolID, index, available); err != nil {
			return err
		}
		pool.Items[index].Available = available
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Ожидаемый RTP зависит от набора доступных предметов
	s.statsRepo.RegisterPool(poolID, expectedRTP(pool))

	logger.Info("item availability changed", "pool_id", poolID, "item_index", index, "available", available)

	s.emit(ctx, events.ItemAvailability, poolID, events.ItemAvailabilityData{
		ItemIndex: index,
		Available: available,
	})

	return pool, nil
}
