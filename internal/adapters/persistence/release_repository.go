package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// GormReleaseRepository implements fulfillment.ReleaseRepository using GORM.
// Commit runs inside a transaction that re-checks for an active release, so
// two racing commits against the same order cannot both succeed.
type GormReleaseRepository struct {
	db *gorm.DB
}

// NewGormReleaseRepository creates a new GORM release repository
func NewGormReleaseRepository(db *gorm.DB) *GormReleaseRepository {
	return &GormReleaseRepository{db: db}
}

// HasActiveRelease reports whether the order has an open, not-yet-invoiced
// release batch
func (r *GormReleaseRepository) HasActiveRelease(ctx context.Context, orderID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&ReleaseModel{}).
		Where("order_id = ? AND status = ?", orderID, ReleaseStatusOpen).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to count releases: %w", result.Error)
	}
	return count > 0, nil
}

// CommitPlan persists a simulated plan as an open release batch and returns
// the new release id
func (r *GormReleaseRepository) CommitPlan(ctx context.Context, plan *fulfillment.FulfillmentPlan) (string, error) {
	releaseID := uuid.New().String()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ReleaseModel{}).
			Where("order_id = ? AND status = ?", plan.OrderID, ReleaseStatusOpen).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count releases: %w", err)
		}
		if count > 0 {
			return shared.NewConflictError("order %s already has an active release batch", plan.OrderID)
		}

		release := ReleaseModel{
			ID:        releaseID,
			OrderID:   plan.OrderID,
			Status:    ReleaseStatusOpen,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&release).Error; err != nil {
			return fmt.Errorf("failed to create release: %w", err)
		}

		for _, line := range plan.Lines {
			item := ReleaseItemModel{
				ReleaseID:   releaseID,
				ProductCode: line.ProductID,
				AccountID:   line.AccountID,
				Quantity:    line.Quantity,
				Pallets:     line.Pallets,
				Weight:      line.Weight,
				Value:       line.Value,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create release item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return releaseID, nil
}

// OpenReleaseIDsByAccount returns the ids of open releases carrying at least
// one item for the given account
func (r *GormReleaseRepository) OpenReleaseIDsByAccount(ctx context.Context, accountID string) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).Model(&ReleaseItemModel{}).
		Joins("Release").
		Where("release_items.account_id = ? AND \"Release\".status = ?", accountID, ReleaseStatusOpen).
		Distinct().
		Pluck("release_items.release_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query releases for account %s: %w", accountID, result.Error)
	}
	return ids, nil
}

// SetSchedule stamps the expedition and appointment dates on an open release
func (r *GormReleaseRepository) SetSchedule(ctx context.Context, releaseID string, expedition, appointment time.Time) error {
	result := r.db.WithContext(ctx).Model(&ReleaseModel{}).
		Where("id = ? AND status = ?", releaseID, ReleaseStatusOpen).
		Updates(map[string]interface{}{
			"expedition_date":  expedition,
			"appointment_date": appointment,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update release schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("no open release with id %s", releaseID)
	}
	return nil
}
