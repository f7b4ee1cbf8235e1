package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"prize_pool/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "prize_pool"

var ErrInvalidClaims = errors.New("invalid token claims")

// GenerateAccessToken подписывает HS256 токен, ID пользователя кладется в jti
func GenerateAccessToken(info *model.User, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.Itoa(info.ID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// VerifyToken принимает только HS256 токены этого сервиса со сроком действия
func VerifyToken(tokenStr string, secretKey []byte) (*model.UserClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)

	claims := &model.UserClaims{}
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.ID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
