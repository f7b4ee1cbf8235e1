package repository

import (
	"math"

	"prize_pool/internal/model"
)

// ToBigint переводит беззнаковую сумму в BIGINT колонку
func ToBigint(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, model.ErrValueTooLarge
	}
	return int64(v), nil
}
