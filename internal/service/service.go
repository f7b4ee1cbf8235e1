package service

import (
	"context"

	"prize_pool/internal/model"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

type PoolService interface {
	CreatePool(ctx context.Context, req model.CreatePool) (*model.Pool, error)
	GetPool(ctx context.Context, id int64) (*model.Pool, error)
	BuyTicket(ctx context.Context, poolID int64) (*model.Ticket, error)
	Spin(ctx context.Context, poolID int64, ticketID uuid.UUID) (*model.SpinResult, error)
	Withdraw(ctx context.Context, poolID int64, amount uint64) (*model.Withdrawal, error)
	SetItemAvailability(ctx context.Context, poolID int64, index int, available bool) (*model.Pool, error)
	Analysis(ctx context.Context, poolID int64) ([]model.ItemAnalysis, error)
	Stats(ctx context.Context, poolID int64) (*model.PoolStats, error)
}

type PaymentService interface {
	Deposit(ctx context.Context, amount uint64) (balance uint64, err error)
	GetBalance(ctx context.Context) (uint64, error)
}
