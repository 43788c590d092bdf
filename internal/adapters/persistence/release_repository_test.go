package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusfonseca/fulfillment-go/internal/adapters/persistence"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
	"github.com/viniciusfonseca/fulfillment-go/test/helpers"
)

func testPlan(orderID string) *fulfillment.FulfillmentPlan {
	return &fulfillment.FulfillmentPlan{
		OrderID:        orderID,
		Classification: fulfillment.Partial,
		Lines: []fulfillment.PlanLine{
			{
				ProductID: "P1",
				AccountID: "ACC-1",
				Quantity:  decimal.NewFromInt(90),
				Pallets:   decimal.NewFromInt(9),
				Weight:    decimal.NewFromInt(90),
				Value:     decimal.NewFromInt(180),
			},
			{
				ProductID: "P2",
				AccountID: "ACC-1",
				Quantity:  decimal.NewFromInt(60),
				Pallets:   decimal.NewFromInt(3),
				Weight:    decimal.NewFromInt(60),
				Value:     decimal.NewFromInt(240),
			},
		},
	}
}

func TestReleaseRepository_CommitAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	active, err := repo.HasActiveRelease(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, active)

	releaseID, err := repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, releaseID)

	active, err = repo.HasActiveRelease(ctx, "ORD-1")
	require.NoError(t, err)
	assert.True(t, active)

	var items []persistence.ReleaseItemModel
	require.NoError(t, db.Where("release_id = ?", releaseID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestReleaseRepository_SecondCommitConflicts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	_, err := repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)

	_, err = repo.CommitPlan(ctx, testPlan("ORD-1"))
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestReleaseRepository_InvoicedReleaseIsNotActive(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	releaseID, err := repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)

	require.NoError(t, db.Model(&persistence.ReleaseModel{}).
		Where("id = ?", releaseID).
		Update("status", persistence.ReleaseStatusInvoiced).Error)

	active, err := repo.HasActiveRelease(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, active)

	// A new commit is allowed once the previous batch is invoiced
	_, err = repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)
}

func TestReleaseRepository_OpenReleaseIDsByAccount(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	releaseID, err := repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)

	ids, err := repo.OpenReleaseIDsByAccount(ctx, "ACC-1")
	require.NoError(t, err)
	assert.Equal(t, []string{releaseID}, ids)

	ids, err = repo.OpenReleaseIDsByAccount(ctx, "ACC-9")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, db.Model(&persistence.ReleaseModel{}).
		Where("id = ?", releaseID).
		Update("status", persistence.ReleaseStatusInvoiced).Error)

	ids, err = repo.OpenReleaseIDsByAccount(ctx, "ACC-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReleaseRepository_SetSchedule(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormReleaseRepository(db)
	ctx := context.Background()

	releaseID, err := repo.CommitPlan(ctx, testPlan("ORD-1"))
	require.NoError(t, err)

	expedition := helpers.Date(2026, 3, 4)
	require.NoError(t, repo.SetSchedule(ctx, releaseID, expedition, expedition.AddDate(0, 0, 1)))

	var model persistence.ReleaseModel
	require.NoError(t, db.First(&model, "id = ?", releaseID).Error)
	require.NotNil(t, model.ExpeditionDate)
	assert.Equal(t, expedition, model.ExpeditionDate.UTC())

	var missing *shared.NotFoundError
	err = repo.SetSchedule(ctx, "no-such-release", expedition, expedition)
	require.ErrorAs(t, err, &missing)
}
