package pool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"prize_pool/internal/audit"
	"prize_pool/internal/events"
	"prize_pool/internal/middleware"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/internal/repository/pool_stats_repo"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

// store Postgres в памяти: пулы, билеты, спины и балансы
type store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	balances   map[int]uint64
	pools      map[int64]*model.Pool
	tickets    map[uuid.UUID]*model.Ticket
	spins      []model.SpinResult
	nextPoolID int64

	createSpinErr error
}

func newStore() *store {
	return &store{
		balances: make(map[int]uint64),
		pools:    make(map[int64]*model.Pool),
		tickets:  make(map[uuid.UUID]*model.Ticket),
	}
}

type snapshot struct {
	balances   map[int]uint64
	pools      map[int64]*model.Pool
	tickets    map[uuid.UUID]*model.Ticket
	spins      []model.SpinResult
	nextPoolID int64
}

func clonePool(p *model.Pool) *model.Pool {
	c := *p
	c.Items = append([]model.PoolItem(nil), p.Items...)
	return &c
}

func (s *store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		balances:   make(map[int]uint64, len(s.balances)),
		pools:      make(map[int64]*model.Pool, len(s.pools)),
		tickets:    make(map[uuid.UUID]*model.Ticket, len(s.tickets)),
		spins:      append([]model.SpinResult(nil), s.spins...),
		nextPoolID: s.nextPoolID,
	}
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	for k, v := range s.pools {
		snap.pools[k] = clonePool(v)
	}
	for k, v := range s.tickets {
		t := *v
		snap.tickets[k] = &t
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances = snap.balances
	s.pools = snap.pools
	s.tickets = snap.tickets
	s.spins = snap.spins
	s.nextPoolID = snap.nextPoolID
}

// fakeTx Транзакции выполняются по очереди и откатываются при ошибке
type fakeTx struct {
	s *store
}

func (tx fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.s.txMu.Lock()
	defer tx.s.txMu.Unlock()

	snap := tx.s.snapshot()
	if err := fn(ctx); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

func (tx fakeTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return tx.Do(ctx, fn)
}

func (s *store) CreatePool(_ context.Context, pool *model.Pool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPoolID++
	stored := clonePool(pool)
	stored.ID = s.nextPoolID
	stored.CreatedAt = time.Unix(1_700_000_000, 0)
	s.pools[stored.ID] = stored
	return stored.ID, nil
}

func (s *store) GetPool(_ context.Context, id int64) (*model.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[id]
	if !ok {
		return nil, model.ErrPoolNotFound
	}
	return clonePool(pool), nil
}

func (s *store) LockPool(ctx context.Context, id int64) (*model.Pool, error) {
	return s.GetPool(ctx, id)
}

func (s *store) UpdateFunds(_ context.Context, id int64, ticketsSold, funds uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[id]
	if !ok {
		return model.ErrPoolNotFound
	}
	pool.TotalTicketsSold = ticketsSold
	pool.TotalFunds = funds
	return nil
}

func (s *store) SetItemAvailability(_ context.Context, poolID int64, index int, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok || index < 0 || index >= len(pool.Items) {
		return model.ErrItemNotFound
	}
	pool.Items[index].Available = available
	return nil
}

func (s *store) CreateTicket(_ context.Context, ticket *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *ticket
	s.tickets[t.ID] = &t
	return nil
}

func (s *store) GetTicket(_ context.Context, id uuid.UUID) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, model.ErrTicketNotFound
	}
	c := *t
	return &c, nil
}

func (s *store) MarkUsed(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok || t.Used {
		return false, nil
	}
	t.Used = true
	return true, nil
}

func (s *store) CreateSpin(_ context.Context, spin *model.SpinResult) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createSpinErr != nil {
		return 0, s.createSpinErr
	}
	spin.CreatedAt = time.Unix(1_700_000_000, 0).UTC()
	s.spins = append(s.spins, *spin)
	return int64(len(s.spins)), nil
}

func (s *store) CountSpins(_ context.Context, poolID int64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count uint64
	for _, spin := range s.spins {
		if spin.PoolID == poolID {
			count++
		}
	}
	return count, nil
}

func (s *store) CreateUser(_ context.Context, user *model.User) (int, error) {
	return 0, errors.New("not supported")
}

func (s *store) GetUserByLogin(_ context.Context, _ string) (*model.User, error) {
	return nil, model.ErrUserNotFound
}

func (s *store) GetBalance(_ context.Context, id int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	return balance, nil
}

func (s *store) UpdateBalance(_ context.Context, id int, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[id]; !ok {
		return model.ErrUserNotFound
	}
	s.balances[id] = amount
	return nil
}

func (s *store) balance(id int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[id]
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []events.Event
}

func (e *recordingEmitter) Emit(_ context.Context, event events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) Close() {}

func (e *recordingEmitter) ofType(eventType string) []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []events.Event
	for _, ev := range e.events {
		if ev.Type == eventType {
			result = append(result, ev)
		}
	}
	return result
}

var fixedNow = time.Unix(1_700_000_000, 0)

const (
	authorityID = 1
	playerID    = 2
	strangerID  = 3
)

type fixture struct {
	store   *store
	stats   *pool_stats_repo.StatsRepo
	audit   *audit.Store
	emitter *recordingEmitter
	serv    *serv
}

func newFixture(t testing.TB, reserve uint64) *fixture {
	t.Helper()

	st := newStore()
	st.balances[authorityID] = 0
	st.balances[playerID] = 10_000
	st.balances[strangerID] = 10_000

	auditStore, err := audit.OpenInMemory()
	if err != nil {
		t.Fatalf("open audit: %v", err)
	}
	t.Cleanup(func() { _ = auditStore.Close() })

	stats := pool_stats_repo.NewPoolStatsRepository(500, 25, 10)
	emitter := &recordingEmitter{}

	srv := NewPoolService(Deps{
		PoolRepo:     st,
		TicketRepo:   st,
		SpinRepo:     st,
		UserRepo:     st,
		StatsRepo:    stats,
		AuditRepo:    auditStore,
		Emitter:      emitter,
		TxManager:    fakeTx{s: st},
		Params:       probability.DefaultParams(),
		VaultReserve: reserve,
		Now:          func() time.Time { return fixedNow },
	}).(*serv)

	return &fixture{store: st, stats: stats, audit: auditStore, emitter: emitter, serv: srv}
}

func as(userID int) context.Context {
	return middleware.WithUserID(context.Background(), userID)
}

func referencePool() model.CreatePool {
	return model.CreatePool{
		CompanyName:  "Apple Store",
		CompanyImage: "https://example.com/apple.png",
		TicketPrice:  100,
		Items: []model.PoolItemInput{
			{Name: "iPhone", Value: 10},
			{Name: "iPad", Value: 50},
			{Name: "MacBook", Value: 200},
			{Name: "AirPods", Value: 1000},
		},
	}
}
