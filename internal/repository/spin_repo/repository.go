package spin_repo

import (
	"context"

	"prize_pool/internal/model"
	"prize_pool/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "spins"
	colID        = "id"
	colPoolID    = "pool_id"
	colTicketID  = "ticket_id"
	colSpinnerID = "spinner_id"
	colItemIndex = "item_index"
	colSeed      = "seed"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewSpinRepository(dbc *pgxpool.Pool) repository.SpinRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateSpin - сохраняет результат спина. ticket_id уникален, второй спин по билету упадет на констрейнте.
// Сид хранится как BIGINT с тем же битовым представлением
func (r *repo) CreateSpin(ctx context.Context, spin *model.SpinResult) (int64, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colPoolID, colTicketID, colSpinnerID, colItemIndex, colSeed).
		Values(spin.PoolID, spin.TicketID, spin.SpinnerID, spin.ItemIndex, int64(spin.Seed)).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&id, &spin.CreatedAt)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// CountSpins - количество спинов пула. Используется как монотонный счетчик для сида
func (r *repo) CountSpins(ctx context.Context, poolID int64) (uint64, error) {
	// Формируем запрос
	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colPoolID: poolID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return uint64(count), nil
}
