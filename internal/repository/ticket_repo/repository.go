package ticket_repo

import (
	"context"
	"errors"

	"prize_pool/internal/model"
	"prize_pool/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "tickets"
	colID        = "id"
	colPoolID    = "pool_id"
	colOwnerID   = "owner_id"
	colPrice     = "price"
	colUsed      = "used"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewTicketRepository(dbc *pgxpool.Pool) repository.TicketRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateTicket - сохраняет новый неиспользованный билет
func (r *repo) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	price, err := repository.ToBigint(ticket.Price)
	if err != nil {
		return err
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colPoolID, colOwnerID, colPrice, colUsed).
		Values(ticket.ID, ticket.PoolID, ticket.OwnerID, price, ticket.Used).
		Suffix("RETURNING " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	return conn.QueryRow(ctx, sqlStr, args...).Scan(&ticket.CreatedAt)
}

// GetTicket - возвращает билет по ID
func (r *repo) GetTicket(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	// Формируем запрос
	query := sq.Select(colID, colPoolID, colOwnerID, colPrice, colUsed, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		ticket model.Ticket
		price  int64
	)
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(
		&ticket.ID, &ticket.PoolID, &ticket.OwnerID, &price, &ticket.Used, &ticket.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTicketNotFound
		}
		return nil, err
	}

	ticket.Price = uint64(price)
	return &ticket, nil
}

// MarkUsed - условный UPDATE: билет переводится в used только из неиспользованного состояния.
// Возвращает false, если другой запрос успел использовать билет раньше
func (r *repo) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colUsed, true).
		Where(sq.Eq{colID: id, colUsed: false}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	res, err := conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() == 1, nil
}
