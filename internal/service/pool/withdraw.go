package pool

import (
	"context"
	"errors"

	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/pkg/logger"
)

// Withdraw переводит средства пула на баланс владельца.
// Резерв VaultReserve всегда остается в пуле
func (s *serv) Withdraw(ctx context.Context, poolID int64, amount uint64) (*model.Withdrawal, error) {
	authorityID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, model.ErrInvalidAmount
	}

	var res *model.Withdrawal

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err := s.poolRepo.LockPool(txCtx, poolID)
		if err != nil {
			return err
		}
		if pool.AuthorityID != authorityID {
			return model.ErrUnauthorized
		}

		// Доступно к выводу все, что сверх резерва
		var withdrawable uint64
		if pool.TotalFunds > s.vaultReserve {
			withdrawable = pool.TotalFunds - s.vaultReserve
		}
		if amount > withdrawable {
			return model.ErrInsufficientFunds
		}

		remaining := pool.TotalFunds - amount
		if err := s.poolRepo.UpdateFunds(txCtx, poolID, pool.TotalTicketsSold, remaining); err != nil {
			return err
		}

		balance, err := s.userRepo.GetBalance(txCtx, authorityID)
		if err != nil {
			return err
		}
		balance, err = probability.SumValues([]uint64{balance, amount})
		if err != nil {
			if errors.Is(err, probability.ErrOverflow) {
				return model.ErrValueTooLarge
			}
			return err
		}
		if err := s.userRepo.UpdateBalance(txCtx, authorityID, balance); err != nil {
			return err
		}

		res = &model.Withdrawal{
			PoolID:         poolID,
			Amount:         amount,
			RemainingFunds: remaining,
			Balance:        balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("funds withdrawn", "pool_id", poolID, "authority_id", authorityID, "amount", amount)

	s.emit(ctx, events.FundsWithdrawn, poolID, events.FundsWithdrawnData{
		AuthorityID:    authorityID,
		Amount:         amount,
		RemainingFunds: res.RemainingFunds,
	})

	return res, nil
}
