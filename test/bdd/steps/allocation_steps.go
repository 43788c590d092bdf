package steps

import (
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/allocation"
)

type allocationContext struct {
	engine  *allocation.Engine
	items   []allocation.Item
	results []allocation.Result
}

func (ac *allocationContext) allocationCandidates(table *godog.Table) error {
	ac.items = nil
	ac.results = nil
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		available, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("invalid available quantity %q: %w", row.Cells[1].Value, err)
		}
		factor, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("invalid pallet factor %q: %w", row.Cells[2].Value, err)
		}
		value, err := decimal.NewFromString(row.Cells[3].Value)
		if err != nil {
			return fmt.Errorf("invalid unit value %q: %w", row.Cells[3].Value, err)
		}
		weight, err := decimal.NewFromString(row.Cells[4].Value)
		if err != nil {
			return fmt.Errorf("invalid unit weight %q: %w", row.Cells[4].Value, err)
		}

		ac.items = append(ac.items, allocation.Item{
			ProductID:    row.Cells[0].Value,
			Available:    available,
			PalletFactor: factor,
			UnitValue:    value,
			UnitWeight:   weight,
		})
	}
	return nil
}

func (ac *allocationContext) iAllocateWholePallets(target int64) error {
	ac.results = ac.engine.AllocateWhole(ac.items, target)
	return nil
}

func (ac *allocationContext) iAllocateFractionalPallets(target int64) error {
	ac.results = ac.engine.AllocateProportional(ac.items, decimal.NewFromInt(target), false)
	return nil
}

func (ac *allocationContext) iAllocateWholeProportionalPallets(target int64) error {
	ac.results = ac.engine.AllocateProportional(ac.items, decimal.NewFromInt(target), true)
	return nil
}

func (ac *allocationContext) resultFor(productID string) (allocation.Result, error) {
	for _, result := range ac.results {
		if result.ProductID == productID {
			return result, nil
		}
	}
	return allocation.Result{}, fmt.Errorf("no allocation line for product %s", productID)
}

func (ac *allocationContext) allocationShouldHaveLines(count int) error {
	if len(ac.results) != count {
		return fmt.Errorf("expected %d allocation lines, got %d", count, len(ac.results))
	}
	return nil
}

func (ac *allocationContext) productShouldReceivePallets(productID string, pallets string) error {
	result, err := ac.resultFor(productID)
	if err != nil {
		return err
	}
	expected, err := decimal.NewFromString(pallets)
	if err != nil {
		return fmt.Errorf("invalid expected pallet count %q: %w", pallets, err)
	}
	if !result.Pallets.Equal(expected) {
		return fmt.Errorf("expected %s pallets for %s, got %s", expected, productID, result.Pallets)
	}
	return nil
}

func (ac *allocationContext) productShouldReceiveQuantity(productID string, quantity string) error {
	result, err := ac.resultFor(productID)
	if err != nil {
		return err
	}
	expected, err := decimal.NewFromString(quantity)
	if err != nil {
		return fmt.Errorf("invalid expected quantity %q: %w", quantity, err)
	}
	if !result.Quantity.Equal(expected) {
		return fmt.Errorf("expected quantity %s for %s, got %s", expected, productID, result.Quantity)
	}
	return nil
}

func (ac *allocationContext) totalPalletsShouldBe(total string) error {
	expected, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("invalid expected total %q: %w", total, err)
	}
	sum := decimal.Zero
	for _, result := range ac.results {
		sum = sum.Add(result.Pallets)
	}
	if !sum.Equal(expected) {
		return fmt.Errorf("expected %s total pallets, got %s", expected, sum)
	}
	return nil
}

// InitializeAllocationScenario registers the pallet allocation step definitions
func InitializeAllocationScenario(sc *godog.ScenarioContext) {
	ctx := &allocationContext{engine: allocation.NewEngine()}

	sc.Step(`^allocation candidates:$`, ctx.allocationCandidates)
	sc.Step(`^I allocate (\d+) whole pallets$`, ctx.iAllocateWholePallets)
	sc.Step(`^I allocate (\d+) fractional pallets$`, ctx.iAllocateFractionalPallets)
	sc.Step(`^I allocate (\d+) whole proportional pallets$`, ctx.iAllocateWholeProportionalPallets)
	sc.Step(`^the allocation should have (\d+) lines$`, ctx.allocationShouldHaveLines)
	sc.Step(`^product "([^"]*)" should receive ([\d.]+) pallets$`, ctx.productShouldReceivePallets)
	sc.Step(`^product "([^"]*)" should receive quantity ([\d.]+)$`, ctx.productShouldReceiveQuantity)
	sc.Step(`^the total allocated pallets should be ([\d.]+)$`, ctx.totalPalletsShouldBe)
}
