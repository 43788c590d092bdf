package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionEntry is a scheduled production receipt for a product
type ProductionEntry struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// Commitment is an outbound quantity already promised to a pending,
// not-yet-invoiced release
type Commitment struct {
	AccountID   string
	ReleaseDate time.Time
	Quantity    decimal.Decimal
}

// StockReader provides current on-hand stock per product
type StockReader interface {
	CurrentStock(ctx context.Context, productID string) (decimal.Decimal, error)
}

// ProductionReader provides scheduled production receipts per product
type ProductionReader interface {
	ScheduledProduction(ctx context.Context, productID string, from, to time.Time) ([]ProductionEntry, error)
}

// CommitmentReader provides open outbound commitments per product,
// optionally excluding a set of customer accounts
type CommitmentReader interface {
	OpenCommitments(ctx context.Context, productID string, excludeAccounts []string) ([]Commitment, error)
}
