package auth

import (
	"context"

	"prize_pool/internal/model"
	"prize_pool/pkg/pass"
)

// Register создаёт пользователя с нулевым балансом и сразу открывает сессию.
// Пользователь и сессия пишутся в одной транзакции
func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Name:     user.Name,
		Login:    user.Login,
		Password: passwordHash,
	}

	var data *model.AuthData
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		newUser.ID, err = s.userRepo.CreateUser(txCtx, newUser)
		if err != nil {
			return err
		}

		data, err = s.openSession(txCtx, newUser)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
