package auth

import "context"

// Logout удаляет сессию, refresh токен после этого недействителен
func (s *serv) Logout(ctx context.Context, sessionID string) error {
	return s.authRepo.DeleteSession(ctx, sessionID)
}
