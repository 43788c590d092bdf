package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// Release batch statuses. Only open releases reserve stock; invoiced and
// cancelled batches no longer count against availability.
const (
	ReleaseStatusOpen      = "open"
	ReleaseStatusInvoiced  = "invoiced"
	ReleaseStatusCancelled = "cancelled"
)

// ProductModel represents the products table (packing master data)
type ProductModel struct {
	Code            string          `gorm:"column:code;primaryKey"`
	Description     string          `gorm:"column:description;not null"`
	PalletFactor    decimal.Decimal `gorm:"column:pallet_factor;type:numeric;not null"`
	UnitGrossWeight decimal.Decimal `gorm:"column:unit_gross_weight;type:numeric;not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

// StockRecordModel represents the stock_records table (on-hand balances)
type StockRecordModel struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductCode string          `gorm:"column:product_code;index;not null"`
	Warehouse   string          `gorm:"column:warehouse"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (StockRecordModel) TableName() string {
	return "stock_records"
}

// ProductionOrderModel represents the production_orders table
// (scheduled receipts)
type ProductionOrderModel struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductCode string          `gorm:"column:product_code;index;not null"`
	DueDate     time.Time       `gorm:"column:due_date;index;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
}

func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// OrderLineModel represents the order_lines table (open order balances)
type OrderLineModel struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID      string          `gorm:"column:order_id;index;not null"`
	LineNumber   int             `gorm:"column:line_number;not null"`
	ProductCode  string          `gorm:"column:product_code;not null"`
	Description  string          `gorm:"column:description"`
	RemainingQty decimal.Decimal `gorm:"column:remaining_qty;type:numeric;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric;not null"`
	AccountID    string          `gorm:"column:account_id;index;not null"`
	ShipToState  string          `gorm:"column:ship_to_state"`
	ShipToCity   string          `gorm:"column:ship_to_city"`
	Incoterm     string          `gorm:"column:incoterm"`
}

func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ReleaseModel represents the releases table (committed shipping batches)
type ReleaseModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	OrderID         string     `gorm:"column:order_id;index;not null"`
	Status          string     `gorm:"column:status;index;not null"`
	ExpeditionDate  *time.Time `gorm:"column:expedition_date"`
	AppointmentDate *time.Time `gorm:"column:appointment_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
}

func (ReleaseModel) TableName() string {
	return "releases"
}

// ReleaseItemModel represents the release_items table
type ReleaseItemModel struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ReleaseID   string          `gorm:"column:release_id;index;not null"`
	Release     *ReleaseModel   `gorm:"foreignKey:ReleaseID;references:ID"`
	ProductCode string          `gorm:"column:product_code;index;not null"`
	AccountID   string          `gorm:"column:account_id;index;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
	Pallets     decimal.Decimal `gorm:"column:pallets;type:numeric;not null"`
	Weight      decimal.Decimal `gorm:"column:weight;type:numeric;not null"`
	Value       decimal.Decimal `gorm:"column:value;type:numeric;not null"`
}

func (ReleaseItemModel) TableName() string {
	return "release_items"
}
