package pool

import (
	"context"

	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/pkg/logger"

	"github.com/google/uuid"
)

// BuyTicket списывает цену билета с баланса покупателя и зачисляет ее в пул
func (s *serv) BuyTicket(ctx context.Context, poolID int64) (*model.Ticket, error) {
	buyerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var ticket *model.Ticket

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем пул, покупки и спины по нему идут по очереди
		pool, err := s.poolRepo.LockPool(txCtx, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return model.ErrPoolInactive
		}

		// Списание с баланса покупателя
		balance, err := s.userRepo.GetBalance(txCtx, buyerID)
		if err != nil {
			return err
		}
		if balance < pool.TicketPrice {
			return model.ErrInsufficientBalance
		}
		if err := s.userRepo.UpdateBalance(txCtx, buyerID, balance-pool.TicketPrice); err != nil {
			return err
		}

		// Зачисление в пул
		funds, err := probability.SumValues([]uint64{pool.TotalFunds, pool.TicketPrice})
		if err != nil {
			return err
		}
		if err := s.poolRepo.UpdateFunds(txCtx, poolID, pool.TotalTicketsSold+1, funds); err != nil {
			return err
		}

		ticket = &model.Ticket{
			ID:      uuid.New(),
			PoolID:  poolID,
			OwnerID: buyerID,
			Price:   pool.TicketPrice,
		}
		return s.ticketRepo.CreateTicket(txCtx, ticket)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("ticket purchased", "pool_id", poolID, "ticket_id", ticket.ID, "buyer_id", buyerID)

	s.emit(ctx, events.TicketPurchased, poolID, events.TicketPurchasedData{
		TicketID: ticket.ID.String(),
		BuyerID:  buyerID,
		Price:    ticket.Price,
	})

	return ticket, nil
}
