package payment

import (
	"context"
	"errors"

	"prize_pool/internal/middleware"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/internal/repository"
	"prize_pool/internal/service"
	"prize_pool/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	userRepo  repository.UserRepository
	txManager trm.Manager
}

func NewPaymentService(userRepo repository.UserRepository, txManager trm.Manager) service.PaymentService {
	return &serv{
		userRepo:  userRepo,
		txManager: txManager,
	}
}

// Deposit пополняет баланс текущего пользователя тестовыми средствами
func (s *serv) Deposit(ctx context.Context, amount uint64) (uint64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, model.ErrUnauthorized
	}
	if amount == 0 {
		return 0, model.ErrInvalidAmount
	}

	var balance uint64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}

		balance, err = probability.SumValues([]uint64{current, amount})
		if err != nil {
			if errors.Is(err, probability.ErrOverflow) {
				return model.ErrValueTooLarge
			}
			return err
		}

		return s.userRepo.UpdateBalance(txCtx, userID, balance)
	})
	if err != nil {
		return 0, err
	}

	logger.Info("deposit", "user_id", userID, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *serv) GetBalance(ctx context.Context) (uint64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, model.ErrUnauthorized
	}
	return s.userRepo.GetBalance(ctx, userID)
}
