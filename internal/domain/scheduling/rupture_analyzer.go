package scheduling

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/stock"
)

// DefaultRuptureHorizonDays bounds the forward search for a resolution date
const DefaultRuptureHorizonDays = 60

// Analyzer computes, for a batch of accounts in priority order, the date on
// which each account's demand becomes satisfiable.
//
// Priority-based reservation is encoded by a cumulative demand ledger scoped
// to one Assess call: after an account is processed its full, uncapped demand
// is added to the ledger, so every later account sees reduced effective
// availability even when the earlier demand cannot actually be fulfilled yet.
type Analyzer struct {
	projector   *stock.Projector
	clock       shared.Clock
	horizonDays int
}

// NewAnalyzer creates a rupture analyzer with the given search horizon.
// A non-positive horizon falls back to DefaultRuptureHorizonDays.
func NewAnalyzer(projector *stock.Projector, clock shared.Clock, horizonDays int) *Analyzer {
	if horizonDays <= 0 {
		horizonDays = DefaultRuptureHorizonDays
	}
	return &Analyzer{
		projector:   projector,
		clock:       clock,
		horizonDays: horizonDays,
	}
}

// demandLedger accumulates demand per product across the priority sequence
// of one Assess call. Totals only ever grow within a call.
type demandLedger struct {
	totals map[string]decimal.Decimal
}

func newDemandLedger() *demandLedger {
	return &demandLedger{totals: make(map[string]decimal.Decimal)}
}

func (l *demandLedger) total(productID string) decimal.Decimal {
	return l.totals[productID]
}

func (l *demandLedger) add(productID string, quantity decimal.Decimal) {
	if quantity.IsPositive() {
		l.totals[productID] = l.totals[productID].Add(quantity)
	}
}

// Assess processes accounts strictly in the given order. An account's
// resolution date is the latest resolution date across its demanded products;
// when a product finds no resolution within the horizon the assessment keeps
// the last day searched and sets the rupture flag. A flagged assessment is
// informational, never an error.
func (a *Analyzer) Assess(ctx context.Context, accounts []AccountDemand) ([]RuptureAssessment, error) {
	today := a.clock.Today()
	ledger := newDemandLedger()

	assessments := make([]RuptureAssessment, 0, len(accounts))
	for i, account := range accounts {
		// Availability is computed as if this account and every
		// lower-priority one did not exist; their demand is represented by
		// the ledger instead.
		excluding := accountIDsFrom(accounts, i)

		resolution := today
		rupture := false

		for _, demand := range account.Demands {
			if !demand.Quantity.IsPositive() {
				continue
			}
			totalRequired := demand.Quantity.Add(ledger.total(demand.ProductID))

			day, found, err := a.findResolutionDay(ctx, demand.ProductID, totalRequired, today, excluding)
			if err != nil {
				return nil, err
			}
			if !found {
				rupture = true
			}
			if day.After(resolution) {
				resolution = day
			}
		}

		assessments = append(assessments, RuptureAssessment{
			AccountID:      account.AccountID,
			ResolutionDate: resolution,
			Rupture:        rupture,
		})

		for _, demand := range account.Demands {
			ledger.add(demand.ProductID, demand.Quantity)
		}
	}

	return assessments, nil
}

// findResolutionDay walks forward from today, one day at a time, until the
// projected availability covers the required quantity or the horizon is
// exhausted. Oversubscribed (negative) projections are clamped to zero.
func (a *Analyzer) findResolutionDay(ctx context.Context, productID string, required decimal.Decimal, today time.Time, excluding []string) (time.Time, bool, error) {
	for offset := 0; offset <= a.horizonDays; offset++ {
		day := today.AddDate(0, 0, offset)

		available, err := a.projector.AvailableOn(ctx, productID, day, excluding)
		if err != nil {
			return time.Time{}, false, err
		}
		if !shared.ClampNonNegative(available).LessThan(required) {
			return day, true, nil
		}
	}
	return today.AddDate(0, 0, a.horizonDays), false, nil
}

func accountIDsFrom(accounts []AccountDemand, start int) []string {
	ids := make([]string, 0, len(accounts)-start)
	for _, account := range accounts[start:] {
		ids = append(ids, account.AccountID)
	}
	return ids
}
