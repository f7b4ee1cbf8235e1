package auth

import (
	"context"
	"errors"

	"prize_pool/internal/model"
	"prize_pool/pkg/pass"
)

// Login Неизвестный логин и неверный пароль неразличимы для клиента
func (s *serv) Login(ctx context.Context, user *model.User) (*model.AuthData, error) {
	stored, err := s.userRepo.GetUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !pass.VerifyPassword(stored.Password, user.Password) {
		return nil, model.ErrInvalidCredentials
	}

	return s.openSession(ctx, stored)
}
