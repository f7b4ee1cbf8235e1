package repository

import (
	"context"

	"prize_pool/internal/audit"
	"prize_pool/internal/model"
	statsModel "prize_pool/internal/repository/pool_stats_repo/model"

	"github.com/google/uuid"
)

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	// GetBalance блокирует строку пользователя до конца транзакции
	GetBalance(ctx context.Context, id int) (uint64, error)
	UpdateBalance(ctx context.Context, id int, amount uint64) error
}

type PoolRepository interface {
	// CreatePool сохраняет пул вместе с предметами, возвращает ID пула
	CreatePool(ctx context.Context, pool *model.Pool) (int64, error)
	GetPool(ctx context.Context, id int64) (*model.Pool, error)
	// LockPool то же, что GetPool, но с блокировкой строки пула до конца транзакции
	LockPool(ctx context.Context, id int64) (*model.Pool, error)

	UpdateFunds(ctx context.Context, id int64, ticketsSold, funds uint64) error
	SetItemAvailability(ctx context.Context, poolID int64, index int, available bool) error
}

type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	GetTicket(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	// MarkUsed помечает билет использованным. false, если билет уже был использован.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
}

type SpinRepository interface {
	CreateSpin(ctx context.Context, spin *model.SpinResult) (int64, error)
	CountSpins(ctx context.Context, poolID int64) (uint64, error)
}

type PoolStatsRepository interface {
	RegisterPool(poolID int64, expectedRTP float64)
	UpdateState(poolID int64, revenue, payout uint64)
	CheckDrift(poolID int64) bool
	Snapshot(poolID int64) (statsModel.PoolState, bool)
}

// AuditRepository воспроизводимые записи спинов
type AuditRepository interface {
	Put(rec audit.Record) error
	Get(poolID int64, ticketID string) (audit.Record, error)
	List(poolID int64) ([]audit.Record, error)
}
