package probability

import "errors"

var (
	// ErrEmptyItems Список предметов пуст
	ErrEmptyItems = errors.New("at least one item must be provided")
	// ErrTooManyItems Предметов больше, чем MaxItems
	ErrTooManyItems = errors.New("too many items (max 10 allowed)")
	// ErrInvalidPrice Цена билета или стоимость предмета равна нулю
	ErrInvalidPrice = errors.New("ticket price and item values must be greater than 0")
	// ErrOverflow Промежуточное значение вышло за пределы представимого диапазона
	ErrOverflow = errors.New("math overflow occurred")
	// ErrProbabilityInvariant Сумма вероятностей не равна 10000 после коррекции
	ErrProbabilityInvariant = errors.New("probability sum mismatch")
	// ErrNoAvailableItems Нет доступных предметов для выбора
	ErrNoAvailableItems = errors.New("no available items to spin")
	// ErrInvalidParams Некорректные параметры распределителя
	ErrInvalidParams = errors.New("invalid allocator params")
)
