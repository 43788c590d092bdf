package allocation

import "github.com/shopspring/decimal"

// Item is a candidate line for pallet allocation
type Item struct {
	ProductID    string
	Available    decimal.Decimal
	PalletFactor decimal.Decimal
	UnitValue    decimal.Decimal
	UnitWeight   decimal.Decimal
}

// value is the monetary worth of the item's available quantity, used as the
// weighting basis in proportional allocation
func (i Item) value() decimal.Decimal {
	return i.Available.Mul(i.UnitValue)
}

// maxFeasiblePallets is the number of pallets the item's availability can
// fill, as a continuous value
func (i Item) maxFeasiblePallets() decimal.Decimal {
	if i.PalletFactor.IsZero() {
		return decimal.Zero
	}
	return i.Available.Div(i.PalletFactor)
}

// Result is the allocation outcome for a single product
type Result struct {
	ProductID string
	Quantity  decimal.Decimal
	Pallets   decimal.Decimal
	Weight    decimal.Decimal
	Value     decimal.Decimal
}

func newResult(item Item, pallets decimal.Decimal) Result {
	quantity := pallets.Mul(item.PalletFactor)
	return Result{
		ProductID: item.ProductID,
		Quantity:  quantity,
		Pallets:   pallets,
		Weight:    quantity.Mul(item.UnitWeight),
		Value:     quantity.Mul(item.UnitValue),
	}
}
