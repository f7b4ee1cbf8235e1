package auth

import (
	"net/http"

	dto "prize_pool/internal/api/dto/auth"
	"prize_pool/internal/converter"
	"prize_pool/internal/model"
	"prize_pool/internal/service"
	"prize_pool/pkg/logger"
	"prize_pool/pkg/req"
	"prize_pool/pkg/resp"
)

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Register создаёт пользователя, открывает сессию
// и возвращает access_token, а session_id и refresh_token через cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteJSONResponse(w, http.StatusBadRequest, resp.ErrorResponse{Error: err.Error()})
		return
	}

	data, err := h.serv.Register(
		r.Context(),
		converter.RegisterRequestToUserModel(&requestBody),
	)
	if err != nil {
		logger.Warn("register failed", "login", requestBody.Login, "error", err)
		resp.WriteJSONResponse(w, http.StatusConflict, resp.ErrorResponse{Error: "register failed"})
		return
	}

	setSessionIDCookie(w, data.SessionID)
	setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusCreated, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Login создаёт сессию, отдаёт access_token в теле и session_id с refresh_token через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteJSONResponse(w, http.StatusBadRequest, resp.ErrorResponse{Error: err.Error()})
		return
	}

	data, err := h.serv.Login(r.Context(), converter.LoginRequestToUserModel(&requestBody))
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	setSessionIDCookie(w, data.SessionID)
	setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Refresh выдаёт новый access_token по паре session_id + refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, model.ErrUnauthorized)
		return
	}
	refreshToken, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		resp.WriteError(w, model.ErrUnauthorized)
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), &model.AuthData{
		SessionID:    sessionID.Value,
		RefreshToken: refreshToken.Value,
	})
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, model.ErrUnauthorized)
		return
	}

	err = h.serv.Logout(r.Context(), c.Value)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	deleteSessionIDCookie(w)
	deleteRefreshTokenCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// setRefreshTokenCookie устанавливает cookie с refresh_token
func setRefreshTokenCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24 * 30, // 30 дней
	})
}

// deleteRefreshTokenCookie удаляет cookie с refresh_token
func deleteRefreshTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionIDCookie устанавливает cookie с session_id
func setSessionIDCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   30 * 24 * 60 * 60, // 30 дней
	})
}

// deleteSessionIDCookie удаляет cookie с session_id
func deleteSessionIDCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
