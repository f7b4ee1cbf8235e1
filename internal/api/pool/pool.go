package pool

import (
	"net/http"
	"strconv"

	dto "prize_pool/internal/api/dto/pool"
	"prize_pool/internal/converter"
	"prize_pool/internal/model"
	"prize_pool/internal/service"
	"prize_pool/pkg/req"
	"prize_pool/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HandlerDeps struct {
	Serv             service.PoolService
	CurrencyDecimals int32
}

type Handler struct {
	serv     service.PoolService
	decimals int32
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:     deps.Serv,
		decimals: deps.CurrencyDecimals,
	}
}

func badRequest(w http.ResponseWriter, err error) {
	resp.WriteJSONResponse(w, http.StatusBadRequest, resp.ErrorResponse{Error: err.Error()})
}

// poolID читает {id} из пути
func poolID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrPoolNotFound
	}
	return id, nil
}

func (h *Handler) CreatePool(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreatePoolRequest](r.Body)
	if err != nil {
		badRequest(w, err)
		return
	}

	pool, err := h.serv.CreatePool(r.Context(), converter.ToCreatePool(payload))
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToPoolResponse(*pool, h.decimals))
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	pool, err := h.serv.GetPool(r.Context(), id)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPoolResponse(*pool, h.decimals))
}

func (h *Handler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	ticket, err := h.serv.BuyTicket(r.Context(), id)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToTicketResponse(*ticket, h.decimals))
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		badRequest(w, err)
		return
	}

	// Формат уже проверен валидатором
	ticketID, err := uuid.Parse(payload.TicketID)
	if err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.serv.Spin(r.Context(), id, ticketID)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result, h.decimals))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	payload, err := req.Decode[dto.WithdrawRequest](r.Body)
	if err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.serv.Withdraw(r.Context(), id, payload.Amount)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWithdrawResponse(*result, h.decimals))
}

func (h *Handler) SetItemAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		resp.WriteError(w, model.ErrItemNotFound)
		return
	}

	payload, err := req.Decode[dto.AvailabilityRequest](r.Body)
	if err != nil {
		badRequest(w, err)
		return
	}

	pool, err := h.serv.SetItemAvailability(r.Context(), id, index, *payload.Available)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPoolResponse(*pool, h.decimals))
}

func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	analyses, err := h.serv.Analysis(r.Context(), id)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAnalysisResponse(id, analyses, h.decimals))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	stats, err := h.serv.Stats(r.Context(), id)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats, h.decimals))
}
