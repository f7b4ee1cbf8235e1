package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// Ограничения на поля пула
	MaxCompanyNameLen  = 50
	MaxCompanyImageLen = 200
	MaxItemNameLen     = 50
	MaxItemImageLen    = 200
	MaxItemDescLen     = 200
	MaxPoolItems       = 10
)

// Pool Пул компании: предметы, цена билета и зафиксированные вероятности
type Pool struct {
	ID               int64
	AuthorityID      int
	CompanyName      string
	CompanyImage     string
	TicketPrice      uint64
	Items            []PoolItem
	TotalValue       uint64
	TotalTicketsSold uint64
	TotalFunds       uint64
	HouseEdge        uint32
	Active           bool
	CreatedAt        time.Time
}

// PoolItem Предмет пула. После создания меняется только Available.
type PoolItem struct {
	Index       int
	Name        string
	Image       string
	Description string
	Value       uint64
	Probability uint32 // базисные пункты
	Available   bool
}

// PoolItemInput Предмет в запросе на создание пула
type PoolItemInput struct {
	Name        string
	Image       string
	Description string
	Value       uint64
}

// CreatePool Запрос на создание пула
type CreatePool struct {
	CompanyName  string
	CompanyImage string
	TicketPrice  uint64
	Items        []PoolItemInput
}

// Ticket Билет на один спин
type Ticket struct {
	ID        uuid.UUID
	PoolID    int64
	OwnerID   int
	Price     uint64
	Used      bool
	CreatedAt time.Time
}

// SpinResult Результат спина
type SpinResult struct {
	ID        int64
	PoolID    int64
	TicketID  uuid.UUID
	SpinnerID int
	ItemIndex int
	Item      PoolItem
	Seed      uint64
	CreatedAt time.Time
}

// Withdrawal Результат вывода средств из пула
type Withdrawal struct {
	PoolID         int64
	Amount         uint64
	RemainingFunds uint64
	Balance        uint64
}

// ItemAnalysis Ожидаемые показатели предмета для отчета
type ItemAnalysis struct {
	ItemName      string
	Value         uint64
	Probability   uint32
	ExpectedSpins float64
	ExpectedCost  *float64
	Profit        *float64
	ProfitRatio   *float64
	// Шанс выиграть предмет хотя бы раз за десять спинов
	ChanceIn10 float64
	// Спинов до 80% шанса, 0 если недостижимо за 1000
	SpinsFor80 int
}

// PoolStats Снимок статистики RTP пула
type PoolStats struct {
	PoolID       int64
	TotalSpins   uint64
	TotalRevenue decimal.Decimal
	TotalPayout  decimal.Decimal
	CurrentRTP   float64
	ExpectedRTP  float64
	WindowRTP    float64
	WindowSpins  int
	Drifting     bool
	DriftEvents  int
}
