package model

import "time"

// Session Серверная сессия. Сам refresh токен не хранится, только его sha256
type Session struct {
	ID          string
	UserID      int
	RefreshHash string
	ExpiresAt   time.Time
}
