package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/allocation"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/stock"
)

// Simulator produces fulfillment plans for single orders. Simulation is a
// pure read: the plan is computed in memory and discarded unless it is
// explicitly committed through the release repository.
type Simulator struct {
	lines     OrderLineReader
	releases  ReleaseRepository
	projector *stock.Projector
	engine    *allocation.Engine
}

// NewSimulator creates a new fulfillment simulator
func NewSimulator(lines OrderLineReader, releases ReleaseRepository, projector *stock.Projector, engine *allocation.Engine) *Simulator {
	return &Simulator{
		lines:     lines,
		releases:  releases,
		projector: projector,
		engine:    engine,
	}
}

// candidate is an order line paired with its available-to-promise quantity
// and the quantity retained for the plan
type candidate struct {
	line      OrderLine
	available decimal.Decimal
	quantity  decimal.Decimal
}

// Simulate builds a fulfillment plan for one order.
//
// Lines matching an exclusion filter (exact product code, or case-insensitive
// substring of the description) are dropped. With stockOnly, each line is
// capped to its available-to-promise quantity; otherwise the full requested
// quantity is kept and a shortage alert is recorded whenever availability
// falls short. A positive targetPallets hands the retained lines to the
// allocation engine, whole or proportional per wholePallet.
func (s *Simulator) Simulate(ctx context.Context, orderID string, excludeFilters []string, stockOnly bool, targetPallets decimal.Decimal, wholePallet bool) (*FulfillmentPlan, error) {
	lines, err := s.lines.OpenOrderLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines for %s: %w", orderID, err)
	}
	if len(lines) == 0 {
		return nil, shared.NewNotFoundError("order %s has no open-balance lines", orderID)
	}

	active, err := s.releases.HasActiveRelease(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check releases for %s: %w", orderID, err)
	}
	if active {
		return nil, shared.NewConflictError("order %s already has an active release batch", orderID)
	}

	retained := applyExclusions(lines, excludeFilters)
	if len(retained) == 0 {
		return nil, shared.NewEmptyError("every line of order %s was excluded by filters", orderID)
	}

	plan := &FulfillmentPlan{OrderID: orderID}

	candidates := make([]candidate, 0, len(retained))
	for _, line := range retained {
		available, err := s.projector.AvailableNow(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		quantity := line.RemainingQty
		if stockOnly {
			if capped := shared.ClampNonNegative(available); capped.LessThan(quantity) {
				quantity = capped
			}
		} else if available.LessThan(line.RemainingQty) {
			plan.Shortages = append(plan.Shortages, ShortageAlert{
				ProductID: line.ProductID,
				Requested: line.RemainingQty,
				Available: shared.ClampNonNegative(available),
			})
		}

		candidates = append(candidates, candidate{line: line, available: available, quantity: quantity})
	}

	if targetPallets.IsPositive() {
		plan.Lines = s.allocate(candidates, targetPallets, wholePallet)
	} else {
		plan.Lines = directLines(candidates)
	}

	plan.Classification = classify(lines, plan.Lines)
	plan.computeTotals()
	return plan, nil
}

// applyExclusions drops lines matching any filter, either by exact product
// code or by case-insensitive substring of the description
func applyExclusions(lines []OrderLine, filters []string) []OrderLine {
	if len(filters) == 0 {
		return lines
	}

	retained := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		excluded := false
		for _, filter := range filters {
			if filter == "" {
				continue
			}
			if filter == line.ProductID ||
				strings.Contains(strings.ToLower(line.Description), strings.ToLower(filter)) {
				excluded = true
				break
			}
		}
		if !excluded {
			retained = append(retained, line)
		}
	}
	return retained
}

// allocate hands the candidate lines to the pallet engine and merges the
// results back, recomputing weight and value from the allocated quantity
func (s *Simulator) allocate(candidates []candidate, targetPallets decimal.Decimal, wholePallet bool) []PlanLine {
	items := make([]allocation.Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, allocation.Item{
			ProductID:    c.line.ProductID,
			Available:    c.quantity,
			PalletFactor: c.line.PalletFactor,
			UnitValue:    c.line.UnitPrice,
			UnitWeight:   c.line.UnitGrossWeight,
		})
	}

	var results []allocation.Result
	if wholePallet {
		results = s.engine.AllocateWhole(items, targetPallets.Floor().IntPart())
	} else {
		results = s.engine.AllocateProportional(items, targetPallets, false)
	}

	byProduct := make(map[string]allocation.Result, len(results))
	for _, r := range results {
		byProduct[r.ProductID] = r
	}

	planLines := make([]PlanLine, 0, len(results))
	for _, c := range candidates {
		r, ok := byProduct[c.line.ProductID]
		if !ok || !r.Quantity.IsPositive() {
			continue
		}
		planLines = append(planLines, PlanLine{
			ProductID:   c.line.ProductID,
			Description: c.line.Description,
			AccountID:   c.line.AccountID,
			Quantity:    r.Quantity,
			Pallets:     r.Pallets,
			Weight:      r.Weight,
			Value:       r.Value,
		})
	}
	return planLines
}

// directLines turns candidates into plan lines without pallet allocation,
// deriving a continuous pallet count from the retained quantity
func directLines(candidates []candidate) []PlanLine {
	planLines := make([]PlanLine, 0, len(candidates))
	for _, c := range candidates {
		if !c.quantity.IsPositive() {
			continue
		}
		pallets := decimal.Zero
		if c.line.PalletFactor.IsPositive() {
			pallets = c.quantity.Div(c.line.PalletFactor)
		}
		planLines = append(planLines, PlanLine{
			ProductID:   c.line.ProductID,
			Description: c.line.Description,
			AccountID:   c.line.AccountID,
			Quantity:    c.quantity,
			Pallets:     pallets,
			Weight:      c.quantity.Mul(c.line.UnitGrossWeight),
			Value:       c.quantity.Mul(c.line.UnitPrice),
		})
	}
	return planLines
}

// classify marks the plan complete only when every original line survives
// with its allocated quantity within tolerance of the requested quantity
func classify(original []OrderLine, planLines []PlanLine) Classification {
	if len(planLines) != len(original) {
		return Partial
	}

	allocated := make(map[string]decimal.Decimal, len(planLines))
	for _, pl := range planLines {
		allocated[pl.ProductID] = pl.Quantity
	}

	for _, line := range original {
		quantity, ok := allocated[line.ProductID]
		if !ok {
			return Partial
		}
		if quantity.Sub(line.RemainingQty).Abs().GreaterThan(shared.QuantityTolerance) {
			return Partial
		}
	}
	return Complete
}
