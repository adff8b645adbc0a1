package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked part or consumable.
//
// StockBaseline is the stock level the item would have if no usage had been
// recorded against it. Usage records are the source of truth for consumption,
// so QuantityInStock must always equal StockBaseline minus the sum of usage.
type InventoryItem struct {
	ID                    uuid.UUID
	SKU                   string
	Name                  string
	Category              string
	QuantityInStock       int
	MinimumStockThreshold int
	StockBaseline         int
	UnitCost              decimal.Decimal
	Supplier              string
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsLowStock reports whether stock is at or below the minimum threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.QuantityInStock <= i.MinimumStockThreshold
}

// StockUsageRecord records a quantity of an item consumed by a job.
type StockUsageRecord struct {
	ID           uuid.UUID
	ItemID       uuid.UUID
	JobID        uuid.UUID
	QuantityUsed int
	UsedAt       time.Time
}
