package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// GormProductCatalog implements fulfillment.ProductCatalog using GORM
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// PalletSpec returns the packing profile of a product
func (c *GormProductCatalog) PalletSpec(ctx context.Context, productID string) (fulfillment.PalletSpec, error) {
	var model ProductModel
	result := c.db.WithContext(ctx).First(&model, "code = ?", productID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fulfillment.PalletSpec{}, shared.NewNotFoundError("product %s has no master data", productID)
		}
		return fulfillment.PalletSpec{}, fmt.Errorf("failed to load product %s: %w", productID, result.Error)
	}

	return fulfillment.PalletSpec{
		UnitsPerPallet:  model.PalletFactor,
		UnitGrossWeight: model.UnitGrossWeight,
	}, nil
}
