package fulfillment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/allocation"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/stock"
)

type fakeOrderLines struct {
	lines map[string][]fulfillment.OrderLine
}

func (f *fakeOrderLines) OpenOrderLines(_ context.Context, orderID string) ([]fulfillment.OrderLine, error) {
	return f.lines[orderID], nil
}

type fakeReleases struct {
	active    map[string]bool
	committed []*fulfillment.FulfillmentPlan
}

func (f *fakeReleases) HasActiveRelease(_ context.Context, orderID string) (bool, error) {
	return f.active[orderID], nil
}

func (f *fakeReleases) CommitPlan(_ context.Context, plan *fulfillment.FulfillmentPlan) (string, error) {
	f.committed = append(f.committed, plan)
	return "REL-1", nil
}

type fakeStock struct {
	onHand map[string]decimal.Decimal
}

func (f *fakeStock) CurrentStock(_ context.Context, productID string) (decimal.Decimal, error) {
	return f.onHand[productID], nil
}

func (f *fakeStock) ScheduledProduction(_ context.Context, _ string, _, _ time.Time) ([]stock.ProductionEntry, error) {
	return nil, nil
}

func (f *fakeStock) OpenCommitments(_ context.Context, _ string, _ []string) ([]stock.Commitment, error) {
	return nil, nil
}

func line(orderID, productID, description string, qty, price, factor float64) fulfillment.OrderLine {
	return fulfillment.OrderLine{
		OrderID:         orderID,
		ProductID:       productID,
		Description:     description,
		RemainingQty:    decimal.NewFromFloat(qty),
		UnitPrice:       decimal.NewFromFloat(price),
		AccountID:       "ACC-1",
		PalletFactor:    decimal.NewFromFloat(factor),
		UnitGrossWeight: decimal.NewFromFloat(1),
	}
}

func newTestSimulator(lines *fakeOrderLines, releases *fakeReleases, onHand map[string]decimal.Decimal) *fulfillment.Simulator {
	clock := shared.NewMockClock(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	projector := stock.NewProjector(&fakeStock{onHand: onHand}, &fakeStock{}, &fakeStock{}, clock)
	return fulfillment.NewSimulator(lines, releases, projector, allocation.NewEngine())
}

func TestSimulate_NoOpenLinesIsNotFound(t *testing.T) {
	sim := newTestSimulator(&fakeOrderLines{}, &fakeReleases{}, nil)

	_, err := sim.Simulate(context.Background(), "ORD-1", nil, false, decimal.Zero, false)

	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSimulate_ActiveReleaseIsConflict(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {line("ORD-1", "P1", "widget", 100, 2, 10)},
	}}
	releases := &fakeReleases{active: map[string]bool{"ORD-1": true}}
	sim := newTestSimulator(lines, releases, nil)

	_, err := sim.Simulate(context.Background(), "ORD-1", nil, false, decimal.Zero, false)

	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestSimulate_AllLinesExcludedIsEmpty(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "P1", "Display Rack Deluxe", 100, 2, 10),
			line("ORD-1", "P2", "widget", 50, 1, 10),
		},
	}}
	sim := newTestSimulator(lines, &fakeReleases{}, nil)

	_, err := sim.Simulate(context.Background(), "ORD-1", []string{"display rack", "P2"}, false, decimal.Zero, false)

	var empty *shared.EmptyError
	require.ErrorAs(t, err, &empty)
}

func TestSimulate_ExclusionByProductCodeIsExact(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "P10", "alpha", 100, 2, 10),
			line("ORD-1", "P1", "beta", 50, 1, 10),
		},
	}}
	onHand := map[string]decimal.Decimal{"P10": decimal.NewFromInt(100), "P1": decimal.NewFromInt(50)}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	// "P1" must drop only the exact product code, not the P10 prefix match
	plan, err := sim.Simulate(context.Background(), "ORD-1", []string{"P1"}, false, decimal.Zero, false)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "P10", plan.Lines[0].ProductID)
}

func TestSimulate_StockOnlyCapsQuantities(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "P1", "widget", 100, 2, 10),
			line("ORD-1", "P2", "gadget", 50, 3, 10),
		},
	}}
	onHand := map[string]decimal.Decimal{
		"P1": decimal.NewFromInt(40), // short
		"P2": decimal.NewFromInt(80), // plenty
	}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.Zero, false)
	require.NoError(t, err)

	require.Len(t, plan.Lines, 2)
	assert.Equal(t, "40", plan.Lines[0].Quantity.String())
	assert.Equal(t, "50", plan.Lines[1].Quantity.String())
	assert.Equal(t, fulfillment.Partial, plan.Classification)
	assert.Empty(t, plan.Shortages)
}

func TestSimulate_ShortagesReportedWithoutCapping(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {line("ORD-1", "P1", "widget", 100, 2, 10)},
	}}
	onHand := map[string]decimal.Decimal{"P1": decimal.NewFromInt(40)}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, false, decimal.Zero, false)
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "100", plan.Lines[0].Quantity.String())
	require.Len(t, plan.Shortages, 1)
	assert.Equal(t, "P1", plan.Shortages[0].ProductID)
	assert.Equal(t, "100", plan.Shortages[0].Requested.String())
	assert.Equal(t, "40", plan.Shortages[0].Available.String())
	assert.Equal(t, fulfillment.Complete, plan.Classification)
}

func TestSimulate_NegativeAvailabilityCapsToZero(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "P1", "widget", 100, 2, 10),
			line("ORD-1", "P2", "gadget", 50, 3, 10),
		},
	}}
	onHand := map[string]decimal.Decimal{
		"P1": decimal.NewFromInt(-20),
		"P2": decimal.NewFromInt(80),
	}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.Zero, false)
	require.NoError(t, err)

	// The oversubscribed line is capped to zero and drops out of the plan
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "P2", plan.Lines[0].ProductID)
}

func TestSimulate_WholePalletAllocation(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "A", "alpha", 95, 1, 10),
			line("ORD-1", "B", "beta", 200, 1, 20),
		},
	}}
	onHand := map[string]decimal.Decimal{
		"A": decimal.NewFromInt(95),
		"B": decimal.NewFromInt(200),
	}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.NewFromInt(12), true)
	require.NoError(t, err)

	require.Len(t, plan.Lines, 2)
	assert.Equal(t, "90", plan.Lines[0].Quantity.String())
	assert.Equal(t, "9", plan.Lines[0].Pallets.String())
	assert.Equal(t, "60", plan.Lines[1].Quantity.String())
	assert.Equal(t, "3", plan.Lines[1].Pallets.String())
	assert.Equal(t, "12", plan.TotalPallets.String())
	assert.Equal(t, fulfillment.Partial, plan.Classification)
}

func TestSimulate_CompleteWithinTolerance(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {line("ORD-1", "P1", "widget", 100, 2, 10)},
	}}
	onHand := map[string]decimal.Decimal{"P1": decimal.NewFromFloat(99.995)}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.Zero, false)
	require.NoError(t, err)
	assert.Equal(t, fulfillment.Complete, plan.Classification)
}

func TestSimulate_TotalsAggregateLines(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "P1", "widget", 100, 2, 10),
			line("ORD-1", "P2", "gadget", 50, 3, 10),
		},
	}}
	onHand := map[string]decimal.Decimal{
		"P1": decimal.NewFromInt(100),
		"P2": decimal.NewFromInt(50),
	}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	plan, err := sim.Simulate(context.Background(), "ORD-1", nil, false, decimal.Zero, false)
	require.NoError(t, err)

	assert.Equal(t, "350", plan.TotalValue.String())  // 100*2 + 50*3
	assert.Equal(t, "150", plan.TotalWeight.String()) // unit weight 1
	assert.Equal(t, "15", plan.TotalPallets.String()) // 10 + 5
	assert.Equal(t, fulfillment.Complete, plan.Classification)
}

func TestSimulate_IsIdempotent(t *testing.T) {
	lines := &fakeOrderLines{lines: map[string][]fulfillment.OrderLine{
		"ORD-1": {
			line("ORD-1", "A", "alpha", 95, 1, 10),
			line("ORD-1", "B", "beta", 200, 1, 20),
		},
	}}
	onHand := map[string]decimal.Decimal{
		"A": decimal.NewFromInt(95),
		"B": decimal.NewFromInt(200),
	}
	sim := newTestSimulator(lines, &fakeReleases{}, onHand)

	first, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.NewFromInt(12), true)
	require.NoError(t, err)
	second, err := sim.Simulate(context.Background(), "ORD-1", nil, true, decimal.NewFromInt(12), true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
