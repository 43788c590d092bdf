package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// GormOrderLineRepository implements fulfillment.OrderLineReader using GORM.
// Lines are enriched through the product catalog so that every line carries
// its pallet factor and unit gross weight.
type GormOrderLineRepository struct {
	db      *gorm.DB
	catalog fulfillment.ProductCatalog
}

// NewGormOrderLineRepository creates a new GORM order line repository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db, catalog: NewGormProductCatalog(db)}
}

// OpenOrderLines returns the open-balance lines of an order in line order
func (r *GormOrderLineRepository) OpenOrderLines(ctx context.Context, orderID string) ([]fulfillment.OrderLine, error) {
	var models []OrderLineModel
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND remaining_qty > 0", orderID).
		Order("line_number").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", result.Error)
	}

	lines := make([]fulfillment.OrderLine, 0, len(models))
	for _, model := range models {
		spec, err := r.catalog.PalletSpec(ctx, model.ProductCode)
		if err != nil {
			var notFound *shared.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to load product %s: %w", model.ProductCode, err)
			}
			// Missing master data leaves the packing fields zero; the
			// engine treats such lines as unable to fill a pallet.
		}

		lines = append(lines, fulfillment.OrderLine{
			OrderID:         model.OrderID,
			ProductID:       model.ProductCode,
			Description:     model.Description,
			RemainingQty:    model.RemainingQty,
			UnitPrice:       model.UnitPrice,
			AccountID:       model.AccountID,
			ShipToState:     model.ShipToState,
			ShipToCity:      model.ShipToCity,
			PalletFactor:    spec.UnitsPerPallet,
			UnitGrossWeight: spec.UnitGrossWeight,
			Incoterm:        model.Incoterm,
		})
	}
	return lines, nil
}

// OpenDemandByAccount aggregates the account's open order lines into one
// demanded quantity per product, for rupture assessment
func (r *GormOrderLineRepository) OpenDemandByAccount(ctx context.Context, accountID string) ([]scheduling.ProductDemand, error) {
	var models []OrderLineModel
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND remaining_qty > 0", accountID).
		Order("product_code").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query account demand: %w", result.Error)
	}

	index := make(map[string]int)
	demands := make([]scheduling.ProductDemand, 0, len(models))
	for _, model := range models {
		if i, ok := index[model.ProductCode]; ok {
			demands[i].Quantity = demands[i].Quantity.Add(model.RemainingQty)
			continue
		}
		index[model.ProductCode] = len(demands)
		demands = append(demands, scheduling.ProductDemand{
			ProductID: model.ProductCode,
			Quantity:  model.RemainingQty,
		})
	}
	return demands, nil
}
