package resp

import (
	"encoding/json"
	"errors"
	"net/http"

	"prize_pool/internal/audit"
	"prize_pool/internal/model"
	"prize_pool/internal/probability"
	"prize_pool/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

// WriteError пишет ошибку с кодом по ее виду. Неизвестные ошибки отдаются как 500 без текста
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("internal error", "error", err)
		msg = http.StatusText(status)
	}
	WriteJSONResponse(w, status, ErrorResponse{Error: msg})
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotTicketOwner):
		return http.StatusForbidden
	case errors.Is(err, model.ErrPoolNotFound),
		errors.Is(err, model.ErrTicketNotFound),
		errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, audit.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrTicketUsed),
		errors.Is(err, model.ErrPoolInactive),
		errors.Is(err, model.ErrInsufficientBalance),
		errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, probability.ErrNoAvailableItems):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrValueTooLarge),
		errors.Is(err, model.ErrCompanyNameTooLong),
		errors.Is(err, model.ErrCompanyImageTooLong),
		errors.Is(err, model.ErrItemNameTooLong),
		errors.Is(err, model.ErrItemImageTooLong),
		errors.Is(err, model.ErrItemDescTooLong),
		errors.Is(err, probability.ErrEmptyItems),
		errors.Is(err, probability.ErrTooManyItems),
		errors.Is(err, probability.ErrInvalidPrice),
		errors.Is(err, probability.ErrOverflow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
