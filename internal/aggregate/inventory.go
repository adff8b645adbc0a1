package aggregate

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// ItemUsage is one row of the inventory usage report.
type ItemUsage struct {
	ItemID    uuid.UUID
	ItemName  string
	TotalUsed int
}

// InventoryUsageReport sums QuantityUsed per item for every item with at
// least one usage record. Rows follow the order of items; the report makes
// no ordering promise beyond determinism, see TopUsage for presentation.
// Usage records whose item no longer exists are left out.
func InventoryUsageReport(items []domain.InventoryItem, usage []domain.StockUsageRecord) []ItemUsage {
	used := sumUsage(usage)

	out := make([]ItemUsage, 0, len(used))
	for _, it := range items {
		total, ok := used[it.ID]
		if !ok {
			continue
		}
		out = append(out, ItemUsage{ItemID: it.ID, ItemName: it.Name, TotalUsed: total})
	}
	return out
}

// TopUsage orders usage rows by TotalUsed descending (ties by name), drops
// rows with nothing used and caps the result at limit. A non-positive limit
// keeps every row. The input is not modified.
func TopUsage(rows []ItemUsage, limit int) []ItemUsage {
	out := make([]ItemUsage, 0, len(rows))
	for _, r := range rows {
		if r.TotalUsed > 0 {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b ItemUsage) int {
		if a.TotalUsed != b.TotalUsed {
			return b.TotalUsed - a.TotalUsed
		}
		return strings.Compare(a.ItemName, b.ItemName)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// LowStockItems returns the items at or below their minimum threshold, in
// input order.
func LowStockItems(items []domain.InventoryItem) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0)
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

// StockDrift describes an item whose stored stock disagrees with its usage
// history.
type StockDrift struct {
	ItemID    uuid.UUID
	ItemName  string
	Recorded  int
	Expected  int
	TotalUsed int
}

// Reconciliation is the result of replaying usage records against stock.
type Reconciliation struct {
	Checked  int
	Drift    []StockDrift
	Dangling []domain.StockUsageRecord
}

// Consistent reports whether no drift and no dangling usage was found.
func (r Reconciliation) Consistent() bool {
	return len(r.Drift) == 0 && len(r.Dangling) == 0
}

// StockReconciliation recomputes each item's expected stock as its baseline
// minus the usage recorded against it. Items whose stored stock differs are
// reported as drift; usage records naming an unknown item are dangling.
func StockReconciliation(items []domain.InventoryItem, usage []domain.StockUsageRecord) Reconciliation {
	used := sumUsage(usage)

	known := make(map[uuid.UUID]struct{}, len(items))
	rec := Reconciliation{
		Checked:  len(items),
		Drift:    make([]StockDrift, 0),
		Dangling: make([]domain.StockUsageRecord, 0),
	}
	for _, it := range items {
		known[it.ID] = struct{}{}
		expected := it.StockBaseline - used[it.ID]
		if expected != it.QuantityInStock {
			rec.Drift = append(rec.Drift, StockDrift{
				ItemID:    it.ID,
				ItemName:  it.Name,
				Recorded:  it.QuantityInStock,
				Expected:  expected,
				TotalUsed: used[it.ID],
			})
		}
	}

	for _, u := range usage {
		if _, ok := known[u.ItemID]; !ok {
			rec.Dangling = append(rec.Dangling, u)
		}
	}
	return rec
}

func sumUsage(usage []domain.StockUsageRecord) map[uuid.UUID]int {
	used := make(map[uuid.UUID]int)
	for _, u := range usage {
		used[u.ItemID] += u.QuantityUsed
	}
	return used
}
