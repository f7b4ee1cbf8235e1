package user

type DepositRequest struct {
	Amount uint64 `json:"amount" validate:"gt=0"` // минимальные единицы валюты
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}
