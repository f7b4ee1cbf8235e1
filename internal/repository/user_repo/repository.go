package user_repo

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
	table           = "users"
	colID           = "id"
	colName         = "name"
	colLogin        = "login"
	colPasswordHash = "password_hash"
	colBalance      = "balance"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	balance, err := repository.ToBigint(user.Balance)
	if err != nil {
		return 0, err
	}

	// Формируем запрос
	query := sq.Insert(table).
		PlaceholderFormat(sq.Dollar).
		Columns(colName, colLogin, colPasswordHash, colBalance).
		Values(user.Name, user.Login, user.Password, balance).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetUserByLogin - возвращает модель пользователя (ID, Name, Login, Password, Balance) по его логину
func (r *repo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colLogin, colPasswordHash, colBalance).
		PlaceholderFormat(sq.Dollar).
		From(table).
		Where(sq.Eq{colLogin: login})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	var balance int64
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Name, &user.Login, &user.Password, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user.Balance = uint64(balance)
	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID.
// Строка блокируется до конца транзакции, чтобы списания не гонялись
func (r *repo) GetBalance(ctx context.Context, id int) (uint64, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		PlaceholderFormat(sq.Dollar).
		From(table).
		Where(sq.Eq{colID: id}).
		Suffix("FOR UPDATE")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, err
	}

	return uint64(balance), nil
}

// UpdateBalance - обновляет баланс пользователя.
// Принимает ID пользователя и новую сумму баланса
func (r *repo) UpdateBalance(ctx context.Context, id int, amount uint64) error {
	balance, err := repository.ToBigint(amount)
	if err != nil {
		return err
	}

	// Формируем запрос
	query := sq.Update(table).
		PlaceholderFormat(sq.Dollar).
		Set(colBalance, balance).
		Where(sq.Eq{colID: id})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
	tag, err := conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
