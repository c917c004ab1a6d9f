package pricing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorExp: число знаков минорной единицы (центавы).
const minorExp = 2

// ErrAmountOutOfRange: сумма не помещается в int64 минорных единиц.
var ErrAmountOutOfRange = errors.New("amount out of range")

// ToMinorUnits: перевод в минорные единицы с округлением к ближайшему
// (половина от нуля), без усечения: 229.90 -> 22990, 0.005 -> 1.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Shift(minorExp).Round(0)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount)
	}
	return minor.IntPart(), nil
}

// FromMinorUnits: обратный перевод, точный.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorExp)
}

// FormatAmount: сумма с двумя знаками после запятой ("459.80").
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(minorExp)
}

// AmountNumber: сумма как JSON-число с двумя знаками (459.80, а не "459.8").
func AmountNumber(amount decimal.Decimal) json.Number {
	return json.Number(FormatAmount(amount))
}
