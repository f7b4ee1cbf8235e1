package pool

import (
	"context"
	"encoding/binary"
	"strings"
	"sync"
	"testing"

	"prize_pool/internal/audit"
	"prize_pool/internal/events"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPool(t *testing.T, f *fixture) *model.Pool {
	t.Helper()
	pool, err := f.serv.CreatePool(as(authorityID), referencePool())
	require.NoError(t, err)
	return pool
}

func buyTicket(t *testing.T, f *fixture, poolID int64, userID int) *model.Ticket {
	t.Helper()
	ticket, err := f.serv.BuyTicket(as(userID), poolID)
	require.NoError(t, err)
	return ticket
}

func TestCreatePool(t *testing.T) {
	f := newFixture(t, 0)

	pool := createPool(t, f)

	assert.Equal(t, int64(1), pool.ID)
	assert.Equal(t, authorityID, pool.AuthorityID)
	assert.True(t, pool.Active)
	assert.Equal(t, uint64(1260), pool.TotalValue)

	probs := make([]uint32, len(pool.Items))
	for i, item := range pool.Items {
		probs[i] = item.Probability
		assert.Equal(t, i, item.Index)
		assert.True(t, item.Available)
	}
	assert.Equal(t, []uint32{9040, 809, 101, 50}, probs)

	stored, err := f.serv.GetPool(context.Background(), pool.ID)
	require.NoError(t, err)
	assert.Equal(t, pool.Items, stored.Items)

	initialized := f.emitter.ofType(events.PoolInitialized)
	require.Len(t, initialized, 1)
	assert.Equal(t, pool.ID, initialized[0].PoolID)

	// Ожидаемый RTP: (9040*10 + 809*50 + 101*200 + 50*1000) / 10000 / 100 * 100
	state, ok := f.stats.Snapshot(pool.ID)
	require.True(t, ok)
	assert.InDelta(t, 20.1, state.ExpectedRTP, 0.01)
}

func TestCreatePool_Validation(t *testing.T) {
	tooMany := referencePool()
	for i := 0; i < 7; i++ {
		tooMany.Items = append(tooMany.Items, model.PoolItemInput{Name: "extra", Value: 5})
	}

	cases := map[string]struct {
		mutate func(req *model.CreatePool)
		err    error
	}{
		"long company name":  {func(r *model.CreatePool) { r.CompanyName = strings.Repeat("a", 51) }, model.ErrCompanyNameTooLong},
		"long company image": {func(r *model.CreatePool) { r.CompanyImage = strings.Repeat("a", 201) }, model.ErrCompanyImageTooLong},
		"long item name":     {func(r *model.CreatePool) { r.Items[0].Name = strings.Repeat("я", 51) }, model.ErrItemNameTooLong},
		"long item image":    {func(r *model.CreatePool) { r.Items[1].Image = strings.Repeat("a", 201) }, model.ErrItemImageTooLong},
		"long description":   {func(r *model.CreatePool) { r.Items[2].Description = strings.Repeat("a", 201) }, model.ErrItemDescTooLong},
		"no items":           {func(r *model.CreatePool) { r.Items = nil }, probability.ErrEmptyItems},
		"too many items":     {func(r *model.CreatePool) { r.Items = tooMany.Items }, probability.ErrTooManyItems},
		"zero price":         {func(r *model.CreatePool) { r.TicketPrice = 0 }, probability.ErrInvalidPrice},
		"zero value":         {func(r *model.CreatePool) { r.Items[3].Value = 0 }, probability.ErrInvalidPrice},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 0)

			req := referencePool()
			tc.mutate(&req)

			_, err := f.serv.CreatePool(as(authorityID), req)
			assert.ErrorIs(t, err, tc.err)
			assert.Empty(t, f.store.pools)
			assert.Empty(t, f.emitter.ofType(events.PoolInitialized))
		})
	}
}

func TestCreatePool_NameLimitCountsCharacters(t *testing.T) {
	f := newFixture(t, 0)

	req := referencePool()
	req.Items[0].Name = strings.Repeat("я", 50)

	_, err := f.serv.CreatePool(as(authorityID), req)
	assert.NoError(t, err)
}

func TestCreatePool_RequiresCaller(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.serv.CreatePool(context.Background(), referencePool())
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestBuyTicket(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	ticket := buyTicket(t, f, pool.ID, playerID)

	assert.Equal(t, pool.ID, ticket.PoolID)
	assert.Equal(t, playerID, ticket.OwnerID)
	assert.Equal(t, uint64(100), ticket.Price)
	assert.False(t, ticket.Used)
	assert.NotEqual(t, uuid.Nil, ticket.ID)

	assert.Equal(t, uint64(9_900), f.store.balance(playerID))

	stored, err := f.serv.GetPool(context.Background(), pool.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stored.TotalTicketsSold)
	assert.Equal(t, uint64(100), stored.TotalFunds)

	assert.Len(t, f.emitter.ofType(events.TicketPurchased), 1)
}

func TestBuyTicket_InsufficientBalance(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	f.store.balances[playerID] = 99

	_, err := f.serv.BuyTicket(as(playerID), pool.ID)
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)

	// Ничего не списано и не зачислено
	assert.Equal(t, uint64(99), f.store.balance(playerID))
	stored, _ := f.serv.GetPool(context.Background(), pool.ID)
	assert.Zero(t, stored.TotalFunds)
	assert.Empty(t, f.store.tickets)
}

func TestBuyTicket_PoolState(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.serv.BuyTicket(as(playerID), 42)
	assert.ErrorIs(t, err, model.ErrPoolNotFound)

	pool := createPool(t, f)
	f.store.pools[pool.ID].Active = false

	_, err = f.serv.BuyTicket(as(playerID), pool.ID)
	assert.ErrorIs(t, err, model.ErrPoolInactive)
}

func TestSpin(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)

	res, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	require.NoError(t, err)

	// Сид собран из времени, участника, счетчика билетов, баланса пула и номера спина
	wantSeed := probability.FoldSeed(probability.SeedSource{
		UnixTime:     fixedNow.Unix(),
		Participant:  binary.LittleEndian.AppendUint64(nil, uint64(playerID)),
		TicketsSold:  1,
		VaultBalance: 100,
		Sequence:     0,
	})
	assert.Equal(t, wantSeed, res.Seed)

	wantIndex, err := probability.Select([]uint32{9040, 809, 101, 50}, wantSeed)
	require.NoError(t, err)
	assert.Equal(t, wantIndex, res.ItemIndex)
	assert.Equal(t, pool.Items[wantIndex].Name, res.Item.Name)

	stored, err := f.store.GetTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.True(t, stored.Used)

	// Аудит воспроизводится
	rec, err := f.audit.Get(pool.ID, ticket.ID.String())
	require.NoError(t, err)
	idx, ok, err := audit.Replay(rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, res.ItemIndex, idx)

	state, _ := f.stats.Snapshot(pool.ID)
	assert.Equal(t, uint64(1), state.TotalSpins)

	spins := f.emitter.ofType(events.SpinResult)
	require.Len(t, spins, 1)
	assert.Equal(t, res.ItemIndex, spins[0].Data.(events.SpinResultData).ItemIndex)
}

func TestSpin_TicketConsumedOnce(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)

	_, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	require.NoError(t, err)

	_, err = f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	assert.ErrorIs(t, err, model.ErrTicketUsed)
	assert.Len(t, f.store.spins, 1)
}

func TestSpin_ConcurrentSameTicket(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		used      int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, model.ErrTicketUsed) {
				used++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, used)
	assert.Len(t, f.store.spins, 1)
}

func TestSpin_Ownership(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)

	_, err := f.serv.Spin(as(strangerID), pool.ID, ticket.ID)
	assert.ErrorIs(t, err, model.ErrNotTicketOwner)

	_, err = f.serv.Spin(as(playerID), pool.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrTicketNotFound)

	// Билет другого пула
	other, err := f.serv.CreatePool(as(authorityID), referencePool())
	require.NoError(t, err)
	_, err = f.serv.Spin(as(playerID), other.ID, ticket.ID)
	assert.ErrorIs(t, err, model.ErrTicketNotFound)

	_, err = f.serv.Spin(context.Background(), pool.ID, ticket.ID)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	// Билет остался неиспользованным
	stored, _ := f.store.GetTicket(context.Background(), ticket.ID)
	assert.False(t, stored.Used)
}

func TestSpin_UnavailableItemsNeverWin(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	for _, index := range []int{0, 1, 3} {
		_, err := f.serv.SetItemAvailability(as(authorityID), pool.ID, index, false)
		require.NoError(t, err)
	}

	for i := 0; i < 20; i++ {
		ticket := buyTicket(t, f, pool.ID, playerID)
		res, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, res.ItemIndex)
	}
}

func TestSpin_NoAvailableItemsRollsBack(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)

	for i := range pool.Items {
		_, err := f.serv.SetItemAvailability(as(authorityID), pool.ID, i, false)
		require.NoError(t, err)
	}

	_, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	assert.ErrorIs(t, err, probability.ErrNoAvailableItems)

	// Билет не сгорел, его можно использовать после возврата предмета
	stored, _ := f.store.GetTicket(context.Background(), ticket.ID)
	assert.False(t, stored.Used)

	_, err = f.serv.SetItemAvailability(as(authorityID), pool.ID, 0, true)
	require.NoError(t, err)
	res, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ItemIndex)
}

func TestSpin_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)
	ticket := buyTicket(t, f, pool.ID, playerID)
	f.store.createSpinErr = assert.AnError

	_, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
	assert.ErrorIs(t, err, assert.AnError)

	stored, _ := f.store.GetTicket(context.Background(), ticket.ID)
	assert.False(t, stored.Used)

	_, err = f.audit.Get(pool.ID, ticket.ID.String())
	assert.ErrorIs(t, err, audit.ErrRecordNotFound)
	assert.Empty(t, f.emitter.ofType(events.SpinResult))
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t, 150)
	pool := createPool(t, f)
	for i := 0; i < 5; i++ {
		buyTicket(t, f, pool.ID, playerID)
	}

	// Только владелец пула
	_, err := f.serv.Withdraw(as(playerID), pool.ID, 100)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = f.serv.Withdraw(as(authorityID), pool.ID, 0)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	// 500 в пуле, 150 резерв
	_, err = f.serv.Withdraw(as(authorityID), pool.ID, 351)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	res, err := f.serv.Withdraw(as(authorityID), pool.ID, 350)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), res.RemainingFunds)
	assert.Equal(t, uint64(350), res.Balance)
	assert.Equal(t, uint64(350), f.store.balance(authorityID))

	_, err = f.serv.Withdraw(as(authorityID), pool.ID, 1)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	assert.Len(t, f.emitter.ofType(events.FundsWithdrawn), 1)
}

func TestSetItemAvailability(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	_, err := f.serv.SetItemAvailability(as(playerID), pool.ID, 0, false)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = f.serv.SetItemAvailability(as(authorityID), pool.ID, 4, false)
	assert.ErrorIs(t, err, model.ErrItemNotFound)

	updated, err := f.serv.SetItemAvailability(as(authorityID), pool.ID, 3, false)
	require.NoError(t, err)
	assert.False(t, updated.Items[3].Available)

	// Вероятности не пересчитываются
	for i := range pool.Items {
		assert.Equal(t, pool.Items[i].Probability, updated.Items[i].Probability)
	}

	// Без AirPods ожидаемая выплата падает
	state, _ := f.stats.Snapshot(pool.ID)
	assert.Less(t, state.ExpectedRTP, 20.0)
}

func TestAnalysis(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	result, err := f.serv.Analysis(context.Background(), pool.ID)
	require.NoError(t, err)
	require.Len(t, result, 4)

	airpods := result[3]
	assert.Equal(t, "AirPods", airpods.ItemName)
	assert.InDelta(t, 200.0, airpods.ExpectedSpins, 1e-9)
	require.NotNil(t, airpods.ExpectedCost)
	assert.InDelta(t, 20000.0, *airpods.ExpectedCost, 1e-9)
	assert.InDelta(t, probability.ChanceWithin(50, 10), airpods.ChanceIn10, 1e-12)
	assert.Equal(t, 322, airpods.SpinsFor80)

	iphone := result[0]
	assert.Equal(t, 1, iphone.SpinsFor80)

	assert.Len(t, f.emitter.ofType(events.ProbabilityAnalysis), 4)

	_, err = f.serv.Analysis(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrPoolNotFound)
}

func TestStats(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	for i := 0; i < 3; i++ {
		ticket := buyTicket(t, f, pool.ID, playerID)
		_, err := f.serv.Spin(as(playerID), pool.ID, ticket.ID)
		require.NoError(t, err)
	}

	stats, err := f.serv.Stats(context.Background(), pool.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.TotalSpins)
	assert.Equal(t, "300", stats.TotalRevenue.String())
	assert.Equal(t, 3, stats.WindowSpins)

	_, err = f.serv.Stats(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrPoolNotFound)
}

func TestStats_UnregisteredPool(t *testing.T) {
	f := newFixture(t, 0)
	pool := createPool(t, f)

	// Пул из базы, статистика в памяти пустая (после рестарта)
	f.serv.statsRepo = newFixture(t, 0).stats

	stats, err := f.serv.Stats(context.Background(), pool.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSpins)
	assert.InDelta(t, 20.1, stats.ExpectedRTP, 0.01)
}
