package auth

import (
	"context"
	"time"

	"prize_pool/internal/config"
	"prize_pool/internal/model"
	"prize_pool/internal/repository"
	"prize_pool/internal/service"
	"prize_pool/pkg/token"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
}

func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}

// openSession создаёт сессию пользователя и выпускает пару токенов
func (s *serv) openSession(ctx context.Context, user *model.User) (*model.AuthData, error) {
	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// В хранилище только хэш, сам токен уходит клиенту в cookie
	err = s.authRepo.CreateSession(ctx, &model.Session{
		ID:          sessionID,
		UserID:      user.ID,
		RefreshHash: token.HashRefreshToken(refreshToken),
		ExpiresAt:   time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
