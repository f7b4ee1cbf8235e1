package pool_repo

import (
	"context"
	"errors"

	"prize_pool/internal/model"
	"prize_pool/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	poolTable          = "pools"
	colID              = "id"
	colAuthorityID     = "authority_id"
	colCompanyName     = "company_name"
	colCompanyImage    = "company_image"
	colTicketPrice     = "ticket_price"
	colTotalValue      = "total_value"
	colTicketsSold     = "total_tickets_sold"
	colTotalFunds      = "total_funds"
	colHouseEdge       = "house_edge"
	colActive          = "active"
	colCreatedAt       = "created_at"
	itemTable          = "pool_items"
	colPoolID          = "pool_id"
	colItemIndex       = "item_index"
	colItemName        = "name"
	colItemImage       = "image"
	colItemDescription = "description"
	colItemValue       = "value"
	colItemProbability = "probability"
	colItemAvailable   = "available"
)

var poolColumns = []string{
	colID, colAuthorityID, colCompanyName, colCompanyImage, colTicketPrice, colTotalValue,
	colTicketsSold, colTotalFunds, colHouseEdge, colActive, colCreatedAt,
}

type repo struct {
	dbc *pgxpool.Pool
}

func NewPoolRepository(dbc *pgxpool.Pool) repository.PoolRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreatePool - сохраняет пул и его предметы.
// Вызывается внутри транзакции, чтобы пул не остался без предметов
func (r *repo) CreatePool(ctx context.Context, pool *model.Pool) (int64, error) {
	price, err := repository.ToBigint(pool.TicketPrice)
	if err != nil {
		return 0, err
	}
	totalValue, err := repository.ToBigint(pool.TotalValue)
	if err != nil {
		return 0, err
	}

	// Формируем запрос на пул
	query := sq.Insert(poolTable).
		Columns(colAuthorityID, colCompanyName, colCompanyImage, colTicketPrice, colTotalValue,
			colTicketsSold, colTotalFunds, colHouseEdge, colActive).
		Values(pool.AuthorityID, pool.CompanyName, pool.CompanyImage, price, totalValue,
			0, 0, int64(pool.HouseEdge), pool.Active).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	var id int64
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&id, &pool.CreatedAt)
	if err != nil {
		return 0, err
	}

	// Предметы одним запросом
	itemsQuery := sq.Insert(itemTable).
		Columns(colPoolID, colItemIndex, colItemName, colItemImage, colItemDescription,
			colItemValue, colItemProbability, colItemAvailable).
		PlaceholderFormat(sq.Dollar)

	for _, item := range pool.Items {
		value, err := repository.ToBigint(item.Value)
		if err != nil {
			return 0, err
		}
		itemsQuery = itemsQuery.Values(id, item.Index, item.Name, item.Image, item.Description,
			value, int64(item.Probability), item.Available)
	}

	sqlStr, args, err = itemsQuery.ToSql()
	if err != nil {
		return 0, err
	}

	_, err = conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetPool - возвращает пул с предметами, отсортированными по индексу
func (r *repo) GetPool(ctx context.Context, id int64) (*model.Pool, error) {
	return r.getPool(ctx, id, false)
}

// LockPool - GetPool с блокировкой строки пула (SELECT ... FOR UPDATE).
// Все изменения средств пула идут через нее, поэтому спины и покупки сериализуются
func (r *repo) LockPool(ctx context.Context, id int64) (*model.Pool, error) {
	return r.getPool(ctx, id, true)
}

func (r *repo) getPool(ctx context.Context, id int64, lock bool) (*model.Pool, error) {
	// Формируем запрос
	query := sq.Select(poolColumns...).
		From(poolTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)

	var (
		pool                                        model.Pool
		price, totalValue, ticketsSold, totalFunds int64
		houseEdge                                   int64
	)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(
		&pool.ID, &pool.AuthorityID, &pool.CompanyName, &pool.CompanyImage, &price, &totalValue,
		&ticketsSold, &totalFunds, &houseEdge, &pool.Active, &pool.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPoolNotFound
		}
		return nil, err
	}

	pool.TicketPrice = uint64(price)
	pool.TotalValue = uint64(totalValue)
	pool.TotalTicketsSold = uint64(ticketsSold)
	pool.TotalFunds = uint64(totalFunds)
	pool.HouseEdge = uint32(houseEdge)

	pool.Items, err = r.getItems(ctx, conn, id)
	if err != nil {
		return nil, err
	}

	return &pool, nil
}

func (r *repo) getItems(ctx context.Context, conn trmpgx.Tr, poolID int64) ([]model.PoolItem, error) {
	query := sq.Select(colItemIndex, colItemName, colItemImage, colItemDescription,
		colItemValue, colItemProbability, colItemAvailable).
		From(itemTable).
		Where(sq.Eq{colPoolID: poolID}).
		OrderBy(colItemIndex).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PoolItem, 0, model.MaxPoolItems)
	for rows.Next() {
		var (
			item        model.PoolItem
			value, prob int64
		)
		err = rows.Scan(&item.Index, &item.Name, &item.Image, &item.Description, &value, &prob, &item.Available)
		if err != nil {
			return nil, err
		}
		item.Value = uint64(value)
		item.Probability = uint32(prob)
		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateFunds - записывает счетчик проданных билетов и баланс пула
func (r *repo) UpdateFunds(ctx context.Context, id int64, ticketsSold, funds uint64) error {
	sold, err := repository.ToBigint(ticketsSold)
	if err != nil {
		return err
	}
	total, err := repository.ToBigint(funds)
	if err != nil {
		return err
	}

	// Формируем запрос
	query := sq.Update(poolTable).
		Set(colTicketsSold, sold).
		Set(colTotalFunds, total).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	res, err := conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrPoolNotFound
	}

	return nil
}

// SetItemAvailability - меняет доступность предмета. Вероятность не трогается
func (r *repo) SetItemAvailability(ctx context.Context, poolID int64, index int, available bool) error {
	// Формируем запрос
	query := sq.Update(itemTable).
		Set(colItemAvailable, available).
		Where(sq.Eq{colPoolID: poolID, colItemIndex: index}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	res, err := conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}
