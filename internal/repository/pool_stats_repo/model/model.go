package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Состояние пула для мониторинга RTP
type PoolState struct {
	TotalSpins   uint64          // Сколько всего спинов сделано
	TotalRevenue decimal.Decimal // Сумма цен использованных билетов
	TotalPayout  decimal.Decimal // Сумма стоимостей выигранных предметов

	CurrentRTP  float64 // (TotalPayout/TotalRevenue)*100
	ExpectedRTP float64 // RTP по зафиксированным вероятностям

	Drifting    bool       // RTP окна ушел от ожидаемого дальше допустимого
	Adjustments []DriftLog // Лог срабатываний

	SpinWindow []SpinResult // Окно последних спинов
	WindowRTP  float64      // RTP в окне
	WindowSize int          // Размер окна
}

// Запись о срабатывании проверки отклонения
type DriftLog struct {
	Timestamp   time.Time
	WindowRTP   float64
	ExpectedRTP float64
	Profit      decimal.Decimal
}

// Результат спина для окна
type SpinResult struct {
	Revenue uint64
	Payout  uint64
}
