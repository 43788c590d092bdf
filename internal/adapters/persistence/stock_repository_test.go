package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusfonseca/fulfillment-go/internal/adapters/persistence"
	"github.com/viniciusfonseca/fulfillment-go/test/helpers"
)

func TestStockRepository_CurrentStockSumsWarehouses(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStockRepository(db)

	helpers.SeedStock(t, db, "P1", 60)
	helpers.SeedStock(t, db, "P1", 40)
	helpers.SeedStock(t, db, "P2", 10)

	total, err := repo.CurrentStock(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "100", total.String())
}

func TestStockRepository_CurrentStockMissingProductIsZero(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStockRepository(db)

	total, err := repo.CurrentStock(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestStockRepository_ScheduledProductionWithinRange(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStockRepository(db)

	from := helpers.Date(2026, 3, 2)
	helpers.SeedProduction(t, db, "P1", from.AddDate(0, 0, 1), 50)
	helpers.SeedProduction(t, db, "P1", from.AddDate(0, 0, 10), 70)
	helpers.SeedProduction(t, db, "P1", from.AddDate(0, 0, -1), 30) // before range

	entries, err := repo.ScheduledProduction(context.Background(), "P1", from, from.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "50", entries[0].Quantity.String())
}

func TestStockRepository_OpenCommitmentsSkipExcludedAccounts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStockRepository(db)
	releases := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	plan := testPlan("ORD-1")
	plan.Lines[0].AccountID = "ACC-1"
	plan.Lines[1].AccountID = "ACC-2"
	plan.Lines[1].ProductID = "P1"
	_, err := releases.CommitPlan(ctx, plan)
	require.NoError(t, err)

	all, err := repo.OpenCommitments(ctx, "P1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	remaining, err := repo.OpenCommitments(ctx, "P1", []string{"ACC-1"})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "ACC-2", remaining[0].AccountID)
}

func TestStockRepository_InvoicedCommitmentsDoNotCount(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStockRepository(db)
	releases := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	releaseID, err := releases.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)

	require.NoError(t, db.Model(&persistence.ReleaseModel{}).
		Where("id = ?", releaseID).
		Update("status", persistence.ReleaseStatusInvoiced).Error)

	commitments, err := repo.OpenCommitments(ctx, "P1", nil)
	require.NoError(t, err)
	assert.Empty(t, commitments)
}

func TestOrderLineRepository_JoinsProductMasterData(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOrderLineRepository(db)

	helpers.SeedProduct(t, db, "P1", "widget deluxe", 10, 1.5)
	helpers.SeedOrderLine(t, db, "ORD-1", 1, "P1", "ACC-1", 100, 2)

	lines, err := repo.OpenOrderLines(context.Background(), "ORD-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "10", lines[0].PalletFactor.String())
	assert.Equal(t, "1.5", lines[0].UnitGrossWeight.String())
}

func TestOrderLineRepository_SkipsSettledLines(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOrderLineRepository(db)

	helpers.SeedProduct(t, db, "P1", "widget", 10, 1)
	helpers.SeedOrderLine(t, db, "ORD-1", 1, "P1", "ACC-1", 100, 2)
	helpers.SeedOrderLine(t, db, "ORD-1", 2, "P1", "ACC-1", 0, 2)

	lines, err := repo.OpenOrderLines(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestOrderLineRepository_OpenDemandByAccountAggregates(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOrderLineRepository(db)

	helpers.SeedProduct(t, db, "P1", "widget", 10, 1)
	helpers.SeedOrderLine(t, db, "ORD-1", 1, "P1", "ACC-1", 60, 2)
	helpers.SeedOrderLine(t, db, "ORD-2", 1, "P1", "ACC-1", 40, 2)
	helpers.SeedOrderLine(t, db, "ORD-3", 1, "P1", "ACC-2", 25, 2)

	demands, err := repo.OpenDemandByAccount(context.Background(), "ACC-1")
	require.NoError(t, err)
	require.Len(t, demands, 1)
	assert.Equal(t, decimal.NewFromInt(100).String(), demands[0].Quantity.String())
}
