package helpers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/viniciusfonseca/fulfillment-go/internal/adapters/persistence"
)

// Date builds a UTC midnight timestamp, the form every scheduling and
// projection computation works in
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedProduct inserts a product master record
func SeedProduct(t *testing.T, db *gorm.DB, code, description string, palletFactor, unitWeight float64) {
	t.Helper()
	product := persistence.ProductModel{
		Code:            code,
		Description:     description,
		PalletFactor:    decimal.NewFromFloat(palletFactor),
		UnitGrossWeight: decimal.NewFromFloat(unitWeight),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", code, err)
	}
}

// SeedStock inserts an on-hand stock balance
func SeedStock(t *testing.T, db *gorm.DB, productCode string, quantity float64) {
	t.Helper()
	record := persistence.StockRecordModel{
		ProductCode: productCode,
		Warehouse:   "MAIN",
		Quantity:    decimal.NewFromFloat(quantity),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed stock for %s: %v", productCode, err)
	}
}

// SeedProduction inserts a scheduled production receipt
func SeedProduction(t *testing.T, db *gorm.DB, productCode string, dueDate time.Time, quantity float64) {
	t.Helper()
	order := persistence.ProductionOrderModel{
		ProductCode: productCode,
		DueDate:     dueDate,
		Quantity:    decimal.NewFromFloat(quantity),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed production for %s: %v", productCode, err)
	}
}

// SeedOrderLine inserts an open order line
func SeedOrderLine(t *testing.T, db *gorm.DB, orderID string, lineNumber int, productCode, accountID string, qty, price float64) {
	t.Helper()
	line := persistence.OrderLineModel{
		OrderID:      orderID,
		LineNumber:   lineNumber,
		ProductCode:  productCode,
		Description:  productCode,
		RemainingQty: decimal.NewFromFloat(qty),
		UnitPrice:    decimal.NewFromFloat(price),
		AccountID:    accountID,
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed order line for %s: %v", orderID, err)
	}
}
