package pool_stats_repo

import (
	"math/big"
	"sync"
	"time"

	repoModel "prize_pool/internal/repository/pool_stats_repo/model"
	"prize_pool/pkg/logger"

	"github.com/shopspring/decimal"
)

// Реализация репозитория для хранения статистики пулов в памяти
type StatsRepo struct {
	mtx   sync.RWMutex
	pools map[int64]*repoModel.PoolState

	// windowSize Размер окна последних спинов
	windowSize int
	// checkPeriod Периодичность проверки отклонения (каждые N спинов)
	checkPeriod int
	// maxDrift Допустимое отклонение RTP окна от ожидаемого, процентные пункты
	maxDrift float64
}

// NewPoolStatsRepository Конструктор репозитория статистики
func NewPoolStatsRepository(windowSize, checkPeriod int, maxDrift float64) *StatsRepo {
	return &StatsRepo{
		pools:       make(map[int64]*repoModel.PoolState),
		windowSize:  windowSize,
		checkPeriod: checkPeriod,
		maxDrift:    maxDrift,
	}
}

// RegisterPool Заводит состояние пула или обновляет ожидаемый RTP
func (r *StatsRepo) RegisterPool(poolID int64, expectedRTP float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.stateLocked(poolID).ExpectedRTP = expectedRTP
}

// UpdateState Обновление статистики пула после спина
func (r *StatsRepo) UpdateState(poolID int64, revenue, payout uint64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	state := r.stateLocked(poolID)

	state.TotalSpins++
	state.TotalRevenue = state.TotalRevenue.Add(fromUint64(revenue))
	state.TotalPayout = state.TotalPayout.Add(fromUint64(payout))
	state.CurrentRTP = rtp(state.TotalPayout, state.TotalRevenue)

	// Добавляем спин в окно
	state.SpinWindow = append(state.SpinWindow, repoModel.SpinResult{
		Revenue: revenue,
		Payout:  payout,
	})

	// Поддерживаем размер окна
	if len(state.SpinWindow) > state.WindowSize {
		state.SpinWindow = state.SpinWindow[1:]
	}

	// Пересчитываем RTP в окне
	windowRevenue, windowPayout := decimal.Zero, decimal.Zero
	for _, spin := range state.SpinWindow {
		windowRevenue = windowRevenue.Add(fromUint64(spin.Revenue))
		windowPayout = windowPayout.Add(fromUint64(spin.Payout))
	}
	state.WindowRTP = rtp(windowPayout, windowRevenue)
}

// CheckDrift Проверка отклонения RTP окна от ожидаемого.
// Срабатывает раз в checkPeriod спинов, возвращает true при новом срабатывании
func (r *StatsRepo) CheckDrift(poolID int64) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	state, ok := r.pools[poolID]
	if !ok || state.TotalSpins == 0 || state.TotalSpins%uint64(r.checkPeriod) != 0 {
		return false
	}

	diff := state.WindowRTP - state.ExpectedRTP
	if diff < 0 {
		diff = -diff
	}

	// Вернулись в норму: снимаем флаг
	if state.Drifting && diff < r.maxDrift/2 {
		state.Drifting = false
		logger.Info("pool rtp back to expected", "pool_id", poolID, "window_rtp", state.WindowRTP)
		return false
	}

	if diff <= r.maxDrift {
		return false
	}

	state.Drifting = true
	state.Adjustments = append(state.Adjustments, repoModel.DriftLog{
		Timestamp:   time.Now(),
		WindowRTP:   state.WindowRTP,
		ExpectedRTP: state.ExpectedRTP,
		Profit:      state.TotalRevenue.Sub(state.TotalPayout),
	})
	logger.Warn("pool rtp drift",
		"pool_id", poolID,
		"window_rtp", state.WindowRTP,
		"expected_rtp", state.ExpectedRTP,
		"spins", state.TotalSpins,
	)
	return true
}

// Snapshot Копия состояния пула
func (r *StatsRepo) Snapshot(poolID int64) (repoModel.PoolState, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	state, ok := r.pools[poolID]
	if !ok {
		return repoModel.PoolState{}, false
	}

	snapshot := *state
	snapshot.SpinWindow = append([]repoModel.SpinResult(nil), state.SpinWindow...)
	snapshot.Adjustments = append([]repoModel.DriftLog(nil), state.Adjustments...)
	return snapshot, true
}

func (r *StatsRepo) stateLocked(poolID int64) *repoModel.PoolState {
	state, ok := r.pools[poolID]
	if !ok {
		state = &repoModel.PoolState{
			TotalRevenue: decimal.Zero,
			TotalPayout:  decimal.Zero,
			SpinWindow:   make([]repoModel.SpinResult, 0, r.windowSize),
			WindowSize:   r.windowSize,
		}
		r.pools[poolID] = state
	}
	return state
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

func rtp(payout, revenue decimal.Decimal) float64 {
	if revenue.IsZero() {
		return 0
	}
	return payout.Div(revenue).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
