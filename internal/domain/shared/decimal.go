package shared

import "github.com/shopspring/decimal"

// Rounding scales used across the engine. Pallet counts are reported with
// two decimal places, quantities with three.
const (
	PalletScale   = 2
	QuantityScale = 3
)

// QuantityTolerance is the maximum difference between an allocated quantity
// and the originally requested quantity for a line to still count as
// completely fulfilled.
var QuantityTolerance = decimal.NewFromFloat(0.01)

// RoundPallets rounds a pallet count for reporting
func RoundPallets(d decimal.Decimal) decimal.Decimal {
	return d.Round(PalletScale)
}

// RoundQuantity rounds a quantity for reporting
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// ClampNonNegative returns zero when d is negative, d otherwise
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
