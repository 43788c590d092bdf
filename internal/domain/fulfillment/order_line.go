package fulfillment

import "github.com/shopspring/decimal"

// OrderLine is a pending customer-order line item with an open balance.
// Lines come from upstream order data and are read-only to the engine.
type OrderLine struct {
	OrderID         string
	ProductID       string
	Description     string
	RemainingQty    decimal.Decimal
	UnitPrice       decimal.Decimal
	AccountID       string
	ShipToState     string
	ShipToCity      string
	PalletFactor    decimal.Decimal
	UnitGrossWeight decimal.Decimal
	Incoterm        string
}
