package pool

import (
	"context"
	"time"

	"prize_pool/internal/events"
	"prize_pool/internal/middleware"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/internal/repository"
	"prize_pool/internal/service"
	"prize_pool/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	poolRepo   repository.PoolRepository
	ticketRepo repository.TicketRepository
	spinRepo   repository.SpinRepository
	userRepo   repository.UserRepository
	statsRepo  repository.PoolStatsRepository
	auditRepo  repository.AuditRepository
	emitter    events.Emitter
	txManager  trm.Manager

	params       probability.Params
	vaultReserve uint64
	now          func() time.Time
}

type Deps struct {
	PoolRepo   repository.PoolRepository
	TicketRepo repository.TicketRepository
	SpinRepo   repository.SpinRepository
	UserRepo   repository.UserRepository
	StatsRepo  repository.PoolStatsRepository
	AuditRepo  repository.AuditRepository
	Emitter    events.Emitter
	TxManager  trm.Manager

	// Params Параметры распределения вероятностей для новых пулов
	Params probability.Params
	// VaultReserve Минимальный остаток средств пула, который нельзя вывести
	VaultReserve uint64
	// Now источник времени для сида, по умолчанию time.Now
	Now func() time.Time
}

// NewPoolService Сервис пулов: создание, билеты, спины и вывод средств
func NewPoolService(deps Deps) service.PoolService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &serv{
		poolRepo:     deps.PoolRepo,
		ticketRepo:   deps.TicketRepo,
		spinRepo:     deps.SpinRepo,
		userRepo:     deps.UserRepo,
		statsRepo:    deps.StatsRepo,
		auditRepo:    deps.AuditRepo,
		emitter:      deps.Emitter,
		txManager:    deps.TxManager,
		params:       deps.Params,
		vaultReserve: deps.VaultReserve,
		now:          now,
	}
}

// emit публикует событие после коммита. Ошибка только логируется
func (s *serv) emit(ctx context.Context, eventType string, poolID int64, data any) {
	err := s.emitter.Emit(ctx, events.Event{
		Type:      eventType,
		PoolID:    poolID,
		Data:      data,
		Timestamp: s.now().Unix(),
	})
	if err != nil {
		logger.Warn("failed to emit event", "type", eventType, "pool_id", poolID, "error", err)
	}
}

// engineItems Предметы пула в представлении движка
func engineItems(items []model.PoolItem) []probability.Item {
	result := make([]probability.Item, len(items))
	for i, item := range items {
		result[i] = probability.Item{
			Name:        item.Name,
			Value:       item.Value,
			Probability: item.Probability,
			Available:   item.Available,
		}
	}
	return result
}

// expectedRTP ожидаемая доля выплат от цены билета, в процентах
func expectedRTP(pool *model.Pool) float64 {
	if pool.TicketPrice == 0 {
		return 0
	}
	return probability.ExpectedPayout(engineItems(pool.Items)) / float64(pool.TicketPrice) * 100
}

func callerID(ctx context.Context) (int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, model.ErrUnauthorized
	}
	return userID, nil
}
