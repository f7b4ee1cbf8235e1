package pool

import (
	"context"

	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/pkg/logger"
)

// CreatePool считает вероятности и сохраняет пул одной транзакцией.
// Вызвавший пользователь становится владельцем пула
func (s *serv) CreatePool(ctx context.Context, req model.CreatePool) (*model.Pool, error) {
	authorityID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	// Валидация запроса
	if err := validateCreatePool(req); err != nil {
		return nil, err
	}

	inputs := make([]probability.Input, len(req.Items))
	values := make([]uint64, len(req.Items))
	for i, item := range req.Items {
		inputs[i] = probability.Input{Name: item.Name, Value: item.Value}
		values[i] = item.Value
	}

	// Суммарная стоимость с проверкой переполнения
	totalValue, err := probability.SumValues(values)
	if err != nil {
		return nil, err
	}

	// КЛЮЧЕВОЙ ВЫЗОВ
	// Распределяем 10000 базисных пунктов между предметами
	alloc, err := probability.Allocate(inputs, req.TicketPrice, s.params)
	if err != nil {
		return nil, err
	}

	// Повторная проверка суммы перед сохранением
	var sum uint32
	for _, p := range alloc.Probabilities {
		sum += p
	}
	if sum != probability.BasisPoints {
		return nil, probability.ErrProbabilityInvariant
	}

	pool := &model.Pool{
		AuthorityID:  authorityID,
		CompanyName:  req.CompanyName,
		CompanyImage: req.CompanyImage,
		TicketPrice:  req.TicketPrice,
		Items:        make([]model.PoolItem, len(req.Items)),
		TotalValue:   totalValue,
		HouseEdge:    alloc.HouseEdge,
		Active:       true,
	}
	for i, item := range req.Items {
		pool.Items[i] = model.PoolItem{
			Index:       i,
			Name:        item.Name,
			Image:       item.Image,
			Description: item.Description,
			Value:       item.Value,
			Probability: alloc.Probabilities[i],
			Available:   true,
		}
	}

	// Пул и предметы сохраняются вместе или не сохраняются вовсе
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		id, err := s.poolRepo.CreatePool(txCtx, pool)
		if err != nil {
			return err
		}
		pool.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.statsRepo.RegisterPool(pool.ID, expectedRTP(pool))

	logger.Info("pool created",
		"pool_id", pool.ID,
		"authority_id", authorityID,
		"items", len(pool.Items),
		"house_edge", alloc.HouseEdge,
		"passes", alloc.Passes,
		"fallback", alloc.Fallback,
	)

	s.emit(ctx, events.PoolInitialized, pool.ID, events.PoolInitializedData{
		AuthorityID:   authorityID,
		CompanyName:   pool.CompanyName,
		TicketPrice:   pool.TicketPrice,
		TotalValue:    pool.TotalValue,
		HouseEdge:     pool.HouseEdge,
		Probabilities: alloc.Probabilities,
	})

	return pool, nil
}
