package events

// PoolInitializedData Создан пул, вероятности зафиксированы
type PoolInitializedData struct {
	AuthorityID   int      `json:"authority_id"`
	CompanyName   string   `json:"company_name"`
	TicketPrice   uint64   `json:"ticket_price"`
	TotalValue    uint64   `json:"total_value"`
	HouseEdge     uint32   `json:"house_edge"`
	Probabilities []uint32 `json:"probabilities"`
}

type TicketPurchasedData struct {
	TicketID string `json:"ticket_id"`
	BuyerID  int    `json:"buyer_id"`
	Price    uint64 `json:"price"`
}

type SpinResultData struct {
	TicketID  string `json:"ticket_id"`
	SpinnerID int    `json:"spinner_id"`
	ItemIndex int    `json:"item_index"`
	ItemName  string `json:"item_name"`
	ItemValue uint64 `json:"item_value"`
	Seed      uint64 `json:"seed"`
}

type FundsWithdrawnData struct {
	AuthorityID    int    `json:"authority_id"`
	Amount         uint64 `json:"amount"`
	RemainingFunds uint64 `json:"remaining_funds"`
}

type ItemAvailabilityData struct {
	ItemIndex int  `json:"item_index"`
	Available bool `json:"available"`
}

// ProbabilityAnalysisData undefined поля (нулевая вероятность) уходят как null
type ProbabilityAnalysisData struct {
	ItemName      string   `json:"item_name"`
	Value         uint64   `json:"value"`
	Probability   uint32   `json:"probability"`
	ExpectedSpins *float64 `json:"expected_spins"`
	ExpectedCost  *float64 `json:"expected_cost"`
	Profit        *float64 `json:"profit"`
	ProfitRatio   *float64 `json:"profit_ratio"`
}
