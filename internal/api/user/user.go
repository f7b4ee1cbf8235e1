package user

import (
	"net/http"

	dto "prize_pool/internal/api/dto/user"
	"prize_pool/internal/converter"
	"prize_pool/internal/service"
	"prize_pool/pkg/req"
	"prize_pool/pkg/resp"
)

type HandlerDeps struct {
	Serv             service.PaymentService
	CurrencyDecimals int32
}

type Handler struct {
	serv     service.PaymentService
	decimals int32
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:     deps.Serv,
		decimals: deps.CurrencyDecimals,
	}
}

// Deposit пополняет баланс пользователя из токена
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteJSONResponse(w, http.StatusBadRequest, resp.ErrorResponse{Error: err.Error()})
		return
	}

	balance, err := h.serv.Deposit(r.Context(), payload.Amount)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{
		Balance: converter.FormatAmount(balance, h.decimals),
	})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.serv.GetBalance(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{
		Balance: converter.FormatAmount(balance, h.decimals),
	})
}
