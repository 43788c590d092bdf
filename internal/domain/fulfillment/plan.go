package fulfillment

import (
	"github.com/shopspring/decimal"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// Classification says whether a plan covers the order in full
type Classification string

const (
	Complete Classification = "complete"
	Partial  Classification = "partial"
)

// PlanLine is one allocated line of a fulfillment plan
type PlanLine struct {
	ProductID   string
	Description string
	AccountID   string
	Quantity    decimal.Decimal
	Pallets     decimal.Decimal
	Weight      decimal.Decimal
	Value       decimal.Decimal
}

// ShortageAlert flags a line whose availability does not cover the
// requested quantity at simulation time
type ShortageAlert struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// FulfillmentPlan is the complete outcome of one simulation: the lines to
// release, their totals, and explicit shortage alerts. Plans are transient;
// nothing is persisted until an explicit commit.
type FulfillmentPlan struct {
	OrderID        string
	Classification Classification
	Lines          []PlanLine
	TotalValue     decimal.Decimal
	TotalWeight    decimal.Decimal
	TotalPallets   decimal.Decimal
	Shortages      []ShortageAlert
}

// computeTotals fills the plan totals from its lines, applying the
// reporting scales for pallets and quantity
func (p *FulfillmentPlan) computeTotals() {
	value, weight, pallets := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range p.Lines {
		p.Lines[i].Quantity = shared.RoundQuantity(p.Lines[i].Quantity)
		p.Lines[i].Pallets = shared.RoundPallets(p.Lines[i].Pallets)
		value = value.Add(p.Lines[i].Value)
		weight = weight.Add(p.Lines[i].Weight)
		pallets = pallets.Add(p.Lines[i].Pallets)
	}
	p.TotalValue = value
	p.TotalWeight = weight
	p.TotalPallets = pallets
}
