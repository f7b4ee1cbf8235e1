package pool

import (
	"context"
	"encoding/binary"

	"prize_pool/internal/audit"
	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/pkg/logger"

	"github.com/google/uuid"
)

// Spin использует билет и выбирает выигрышный предмет.
// Билет помечается использованным в той же транзакции, что и запись результата
func (s *serv) Spin(ctx context.Context, poolID int64, ticketID uuid.UUID) (*model.SpinResult, error) {
	spinnerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		res    *model.SpinResult
		pool   *model.Pool
		ticket *model.Ticket
	)

	// Начало транзакции где выполняется процесс спина
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err = s.poolRepo.LockPool(txCtx, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return model.ErrPoolInactive
		}

		// Проверка билета
		ticket, err = s.ticketRepo.GetTicket(txCtx, ticketID)
		if err != nil {
			return err
		}
		if ticket.PoolID != poolID {
			return model.ErrTicketNotFound
		}
		if ticket.OwnerID != spinnerID {
			return model.ErrNotTicketOwner
		}
		if ticket.Used {
			return model.ErrTicketUsed
		}

		// Билет расходуется ровно один раз
		marked, err := s.ticketRepo.MarkUsed(txCtx, ticketID)
		if err != nil {
			return err
		}
		if !marked {
			return model.ErrTicketUsed
		}

		sequence, err := s.spinRepo.CountSpins(txCtx, poolID)
		if err != nil {
			return err
		}

		seed := probability.FoldSeed(probability.SeedSource{
			UnixTime:     s.now().Unix(),
			Participant:  binary.LittleEndian.AppendUint64(nil, uint64(spinnerID)),
			TicketsSold:  pool.TotalTicketsSold,
			VaultBalance: pool.TotalFunds,
			Sequence:     sequence,
		})

		// КЛЮЧЕВОЙ ВЫЗОВ
		// Выбор среди доступных предметов
		index, err := probability.SelectAvailable(engineItems(pool.Items), seed)
		if err != nil {
			return err
		}

		res = &model.SpinResult{
			PoolID:    poolID,
			TicketID:  ticketID,
			SpinnerID: spinnerID,
			ItemIndex: index,
			Item:      pool.Items[index],
			Seed:      seed,
		}
		res.ID, err = s.spinRepo.CreateSpin(txCtx, res)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(pool, res)

	// Обновляем статистику
	s.statsRepo.RegisterPool(poolID, expectedRTP(pool))
	s.statsRepo.UpdateState(poolID, ticket.Price, res.Item.Value)
	s.statsRepo.CheckDrift(poolID)

	logger.Info("spin",
		"pool_id", poolID,
		"ticket_id", ticketID,
		"spinner_id", spinnerID,
		"item_index", res.ItemIndex,
		"seed", res.Seed,
	)

	s.emit(ctx, events.SpinResult, poolID, events.SpinResultData{
		TicketID:  ticketID.String(),
		SpinnerID: spinnerID,
		ItemIndex: res.ItemIndex,
		ItemName:  res.Item.Name,
		ItemValue: res.Item.Value,
		Seed:      res.Seed,
	})

	return res, nil
}

// recordAudit Спин уже закоммичен, поэтому сбой аудита только логируется
func (s *serv) recordAudit(pool *model.Pool, res *model.SpinResult) {
	rec := audit.Record{
		PoolID:        pool.ID,
		TicketID:      res.TicketID.String(),
		SpinnerID:     res.SpinnerID,
		Seed:          res.Seed,
		Probabilities: make([]uint32, len(pool.Items)),
		Available:     make([]bool, len(pool.Items)),
		ItemIndex:     res.ItemIndex,
		CreatedAt:     res.CreatedAt,
	}
	for i, item := range pool.Items {
		rec.Probabilities[i] = item.Probability
		rec.Available[i] = item.Available
	}

	if err := s.auditRepo.Put(rec); err != nil {
		logger.Error("failed to write spin audit record", "pool_id", pool.ID, "ticket_id", res.TicketID, "error", err)
	}
}
