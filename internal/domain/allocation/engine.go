package allocation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Engine distributes a target pallet count across a set of candidate items,
// either as whole pallets or as fractional proportional shares.
//
// This is a pure domain service: all methods are stateless and deterministic,
// with no infrastructure dependencies. An allocated quantity never exceeds
// the item's available quantity at call time.
type Engine struct{}

// NewEngine creates a new pallet allocation engine
func NewEngine() *Engine {
	return &Engine{}
}

// AllocateWhole assigns whole pallets greedily, walking items in ascending
// pallet-factor order (stable on ties). Each item receives at most
// floor(available / factor) pallets, capped by the remaining budget; the walk
// stops when the budget is exhausted.
//
// Items with a non-positive pallet factor cannot fill a pallet and are
// skipped. Returns nil for an empty item list or a non-positive target.
func (e *Engine) AllocateWhole(items []Item, targetPallets int64) []Result {
	if len(items) == 0 || targetPallets <= 0 {
		return nil
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].PalletFactor.LessThan(sorted[b].PalletFactor)
	})

	var results []Result
	remaining := targetPallets

	for _, item := range sorted {
		if remaining == 0 {
			break
		}
		if !item.PalletFactor.IsPositive() {
			continue
		}

		maxPallets := item.Available.Div(item.PalletFactor).Floor().IntPart()
		assigned := maxPallets
		if remaining < assigned {
			assigned = remaining
		}
		if assigned <= 0 {
			continue
		}

		results = append(results, newResult(item, decimal.NewFromInt(assigned)))
		remaining -= assigned
	}

	return results
}

// AllocateProportional splits the target pallet count across items in
// proportion to the monetary value of each item's availability. When every
// item values to zero the split falls back to equal shares.
//
// With whole set, each share is floored and clamped to the item's feasible
// pallet count and to the remaining overall budget; a lead item whose share
// floors to zero is still granted one pallet when the budget allows, so the
// highest-priority line always receives a token allocation. Without whole,
// shares stay continuous and are clamped only to the item's own feasibility.
//
// Returns nil for an empty item list or a non-positive target.
func (e *Engine) AllocateProportional(items []Item, targetPallets decimal.Decimal, whole bool) []Result {
	if len(items) == 0 || !targetPallets.IsPositive() {
		return nil
	}

	totalValue := decimal.Zero
	for _, item := range items {
		totalValue = totalValue.Add(item.value())
	}
	equalSplit := totalValue.IsZero()
	itemCount := decimal.NewFromInt(int64(len(items)))

	results := make([]Result, 0, len(items))

	if whole {
		budget := targetPallets.Floor().IntPart()

		for i, item := range items {
			var raw decimal.Decimal
			if equalSplit {
				raw = targetPallets.Div(itemCount)
			} else {
				raw = targetPallets.Mul(item.value()).Div(totalValue)
			}

			pallets := raw.Floor().IntPart()
			if i == 0 && pallets == 0 && budget >= 1 {
				pallets = 1
			} else {
				feasible := item.maxFeasiblePallets().Floor().IntPart()
				if pallets > feasible {
					pallets = feasible
				}
				if pallets > budget {
					pallets = budget
				}
			}
			if pallets < 0 {
				pallets = 0
			}

			budget -= pallets
			results = append(results, newResult(item, decimal.NewFromInt(pallets)))
		}
		return results
	}

	for _, item := range items {
		var pallets decimal.Decimal
		if equalSplit {
			pallets = targetPallets.Div(itemCount)
		} else {
			pallets = targetPallets.Mul(item.value()).Div(totalValue)
		}

		if feasible := item.maxFeasiblePallets(); pallets.GreaterThan(feasible) {
			pallets = feasible
		}

		results = append(results, newResult(item, pallets))
	}
	return results
}
