package converter

import (
	"math/big"

	"prize_pool/internal/probability"

	"github.com/shopspring/decimal"
)

// FormatAmount сумма в минимальных единицах -> строка с decimals знаками: 12345, 2 -> "123.45"
func FormatAmount(v uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -decimals).StringFixed(decimals)
}

// FormatPercent базисные пункты -> проценты: 9040 -> "90.40"
func FormatPercent(bp uint32) string {
	return decimal.New(int64(bp), 0).
		Div(decimal.New(int64(probability.BasisPoints), 0)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}
