package pool

import "time"

// Суммы во входящих запросах в минимальных единицах валюты,
// в ответах строкой с CURRENCY_DECIMALS знаками после запятой

type CreatePoolRequest struct {
	CompanyName  string            `json:"company_name" validate:"required"`
	CompanyImage string            `json:"company_image"`
	TicketPrice  uint64            `json:"ticket_price"`
	Items        []PoolItemRequest `json:"items" validate:"required,dive"`
}

type PoolItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Value       uint64 `json:"value"`
}

type PoolResponse struct {
	ID               int64              `json:"id"`
	AuthorityID      int                `json:"authority_id"`
	CompanyName      string             `json:"company_name"`
	CompanyImage     string             `json:"company_image"`
	TicketPrice      string             `json:"ticket_price"`
	TotalValue       string             `json:"total_value"`
	TotalTicketsSold uint64             `json:"total_tickets_sold"`
	TotalFunds       string             `json:"total_funds"`
	HouseEdge        uint32             `json:"house_edge"` // базисные пункты
	Active           bool               `json:"active"`
	Items            []PoolItemResponse `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
}

type PoolItemResponse struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Probability uint32 `json:"probability"` // базисные пункты
	Percent     string `json:"percent"`     // 9040 -> "90.40"
	Available   bool   `json:"available"`
}

type TicketResponse struct {
	ID        string    `json:"id"`
	PoolID    int64     `json:"pool_id"`
	Price     string    `json:"price"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

type SpinRequest struct {
	TicketID string `json:"ticket_id" validate:"required,uuid"`
}

type SpinResponse struct {
	ID        int64     `json:"id"`
	PoolID    int64     `json:"pool_id"`
	TicketID  string    `json:"ticket_id"`
	ItemIndex int       `json:"item_index"`
	ItemName  string    `json:"item_name"`
	ItemImage string    `json:"item_image"`
	ItemValue string    `json:"item_value"`
	Seed      string    `json:"seed"` // uint64 не помещается в число JS
	CreatedAt time.Time `json:"created_at"`
}

type WithdrawRequest struct {
	Amount uint64 `json:"amount" validate:"gt=0"`
}

type WithdrawResponse struct {
	PoolID         int64  `json:"pool_id"`
	Amount         string `json:"amount"`
	RemainingFunds string `json:"remaining_funds"`
	Balance        string `json:"balance"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type AnalysisResponse struct {
	PoolID int64                  `json:"pool_id"`
	Items  []ItemAnalysisResponse `json:"items"`
}

// ItemAnalysisResponse null в полях означает "не определено" (нулевая вероятность)
type ItemAnalysisResponse struct {
	ItemName      string   `json:"item_name"`
	Value         string   `json:"value"`
	Probability   uint32   `json:"probability"`
	ExpectedSpins *float64 `json:"expected_spins"`
	ExpectedCost  *float64 `json:"expected_cost"`
	Profit        *float64 `json:"profit"`
	ProfitRatio   *float64 `json:"profit_ratio"`
	ChanceIn10    float64  `json:"chance_in_10"`
	SpinsFor80    *int     `json:"spins_for_80"`
}

type StatsResponse struct {
	PoolID       int64   `json:"pool_id"`
	TotalSpins   uint64  `json:"total_spins"`
	TotalRevenue string  `json:"total_revenue"`
	TotalPayout  string  `json:"total_payout"`
	CurrentRTP   float64 `json:"current_rtp"`
	ExpectedRTP  float64 `json:"expected_rtp"`
	WindowRTP    float64 `json:"window_rtp"`
	WindowSpins  int     `json:"window_spins"`
	Drifting     bool    `json:"drifting"`
	DriftEvents  int     `json:"drift_events"`
}
