package fulfillment

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderLineReader provides the open-balance lines of an order
type OrderLineReader interface {
	OpenOrderLines(ctx context.Context, orderID string) ([]OrderLine, error)
}

// PalletSpec is the master-data packing profile of a product
type PalletSpec struct {
	UnitsPerPallet  decimal.Decimal
	UnitGrossWeight decimal.Decimal
}

// ProductCatalog provides packing master data per product
type ProductCatalog interface {
	PalletSpec(ctx context.Context, productID string) (PalletSpec, error)
}

// ReleaseRepository persists committed fulfillment plans as release batches.
// CommitPlan must guarantee at most one active, not-yet-invoiced release per
// order (e.g. inside a single-writer transaction keyed by order id).
type ReleaseRepository interface {
	HasActiveRelease(ctx context.Context, orderID string) (bool, error)
	CommitPlan(ctx context.Context, plan *FulfillmentPlan) (string, error)
}
