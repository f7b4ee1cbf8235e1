package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  uint64
}

type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData Токены и сессия, выдаваемые при регистрации и логине
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
