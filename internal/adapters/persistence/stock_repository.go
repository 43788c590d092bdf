package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/stock"
)

// GormStockRepository implements the stock ports (on-hand stock, scheduled
// production, open commitments) using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// CurrentStock sums the on-hand balance of a product across warehouses.
// A product without stock records yields zero.
func (r *GormStockRepository) CurrentStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	var records []StockRecordModel
	result := r.db.WithContext(ctx).Where("product_code = ?", productID).Find(&records)
	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to query stock records: %w", result.Error)
	}

	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Quantity)
	}
	return total, nil
}

// ScheduledProduction returns production receipts due within [from, to]
func (r *GormStockRepository) ScheduledProduction(ctx context.Context, productID string, from, to time.Time) ([]stock.ProductionEntry, error) {
	var models []ProductionOrderModel
	result := r.db.WithContext(ctx).
		Where("product_code = ? AND due_date >= ? AND due_date <= ?", productID, from, to).
		Order("due_date").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query production orders: %w", result.Error)
	}

	entries := make([]stock.ProductionEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, stock.ProductionEntry{
			Date:     model.DueDate,
			Quantity: model.Quantity,
		})
	}
	return entries, nil
}

// OpenCommitments returns the quantities of a product promised to open,
// not-yet-invoiced releases, skipping the excluded accounts. A committed item
// without an expedition date counts from the day its release was created.
func (r *GormStockRepository) OpenCommitments(ctx context.Context, productID string, excludeAccounts []string) ([]stock.Commitment, error) {
	query := r.db.WithContext(ctx).
		Joins("Release").
		Where("product_code = ? AND \"Release\".status = ?", productID, ReleaseStatusOpen)
	if len(excludeAccounts) > 0 {
		query = query.Where("account_id NOT IN ?", excludeAccounts)
	}

	var items []ReleaseItemModel
	if result := query.Find(&items); result.Error != nil {
		return nil, fmt.Errorf("failed to query open commitments: %w", result.Error)
	}

	commitments := make([]stock.Commitment, 0, len(items))
	for _, item := range items {
		releaseDate := item.Release.CreatedAt
		if item.Release.ExpeditionDate != nil {
			releaseDate = *item.Release.ExpeditionDate
		}
		commitments = append(commitments, stock.Commitment{
			AccountID:   item.AccountID,
			ReleaseDate: releaseDate,
			Quantity:    item.Quantity,
		})
	}
	return commitments, nil
}
