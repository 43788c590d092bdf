package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// Projector computes current and projected available-to-promise quantities
// per product from on-hand stock, scheduled production and open commitments.
//
// This is a domain service with no infrastructure dependencies. Absent data
// (no stock record, no production, no commitments) contributes zero and is
// never an error.
type Projector struct {
	stock       StockReader
	production  ProductionReader
	commitments CommitmentReader
	clock       shared.Clock
}

// NewProjector creates a new availability projector
func NewProjector(stock StockReader, production ProductionReader, commitments CommitmentReader, clock shared.Clock) *Projector {
	return &Projector{
		stock:       stock,
		production:  production,
		commitments: commitments,
		clock:       clock,
	}
}

// AvailableNow returns the quantity of a product that can be promised today:
// current on-hand stock minus quantities already committed to pending,
// not-yet-invoiced releases. Returns zero when no stock record exists.
func (p *Projector) AvailableNow(ctx context.Context, productID string) (decimal.Decimal, error) {
	onHand, err := p.stock.CurrentStock(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock for %s: %w", productID, err)
	}

	committed, err := p.committedThrough(ctx, productID, time.Time{}, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return onHand.Sub(committed), nil
}

// AvailableOn projects the quantity of a product available on targetDate.
// Scheduled production counts only when due on or before targetDate minus one
// day; production landing on the expedition day itself is not usable that day.
// Commitments of accounts in excludeAccounts are ignored. The result may be
// negative when the product is oversubscribed; callers must clamp.
func (p *Projector) AvailableOn(ctx context.Context, productID string, targetDate time.Time, excludeAccounts []string) (decimal.Decimal, error) {
	targetDate = shared.Midnight(targetDate)
	today := p.clock.Today()

	onHand, err := p.stock.CurrentStock(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock for %s: %w", productID, err)
	}

	produced := decimal.Zero
	cutoff := targetDate.AddDate(0, 0, -1)
	if !cutoff.Before(today) {
		entries, err := p.production.ScheduledProduction(ctx, productID, today, cutoff)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to read scheduled production for %s: %w", productID, err)
		}
		for _, entry := range entries {
			if !shared.Midnight(entry.Date).After(cutoff) {
				produced = produced.Add(entry.Quantity)
			}
		}
	}

	committed, err := p.committedThrough(ctx, productID, targetDate, excludeAccounts)
	if err != nil {
		return decimal.Zero, err
	}

	return onHand.Add(produced).Sub(committed), nil
}

// committedThrough sums open commitments of non-excluded accounts whose
// release date is on or before the cutoff. A zero cutoff counts every open
// commitment regardless of date.
func (p *Projector) committedThrough(ctx context.Context, productID string, cutoff time.Time, excludeAccounts []string) (decimal.Decimal, error) {
	commitments, err := p.commitments.OpenCommitments(ctx, productID, excludeAccounts)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read commitments for %s: %w", productID, err)
	}

	total := decimal.Zero
	for _, c := range commitments {
		if !cutoff.IsZero() && shared.Midnight(c.ReleaseDate).After(cutoff) {
			continue
		}
		total = total.Add(c.Quantity)
	}
	return total, nil
}
