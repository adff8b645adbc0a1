package viewcache

import "github.com/heartmarshall/fieldservice-backend/internal/domain"

// View identifies one derived aggregate.
type View string

const (
	ViewDashboardStats        View = "dashboardStats"
	ViewJobStatusSummary      View = "jobStatusSummary"
	ViewRevenueByMonth        View = "revenueByMonth"
	ViewTechnicianPerformance View = "technicianPerformance"
	ViewInventoryUsageReport  View = "inventoryUsageReport"
	ViewLowStockItems         View = "lowStockItems"
	ViewScheduleIndex         View = "scheduleIndex"
	ViewUpcomingJobs          View = "upcomingJobs"
	ViewRecentJobs            View = "recentJobs"
	ViewStockReconciliation   View = "stockReconciliation"
)

// AllViews returns every view key.
func AllViews() []View {
	return []View{
		ViewDashboardStats,
		ViewJobStatusSummary,
		ViewRevenueByMonth,
		ViewTechnicianPerformance,
		ViewInventoryUsageReport,
		ViewLowStockItems,
		ViewScheduleIndex,
		ViewUpcomingJobs,
		ViewRecentJobs,
		ViewStockReconciliation,
	}
}

func (v View) String() string { return string(v) }

func (v View) IsValid() bool {
	switch v {
	case ViewDashboardStats, ViewJobStatusSummary, ViewRevenueByMonth,
		ViewTechnicianPerformance, ViewInventoryUsageReport, ViewLowStockItems,
		ViewScheduleIndex, ViewUpcomingJobs, ViewRecentJobs, ViewStockReconciliation:
		return true
	}
	return false
}

// Dependents returns the views that read entities of the given kind and must
// be invalidated when one of them changes. Unknown kinds have no dependents.
func Dependents(kind domain.EntityKind) []View {
	switch kind {
	case domain.EntityKindCustomer:
		return []View{ViewDashboardStats, ViewRecentJobs}
	case domain.EntityKindTechnician:
		return []View{ViewDashboardStats, ViewTechnicianPerformance, ViewRecentJobs}
	case domain.EntityKindJob:
		return []View{
			ViewDashboardStats,
			ViewJobStatusSummary,
			ViewTechnicianPerformance,
			ViewScheduleIndex,
			ViewUpcomingJobs,
			ViewRecentJobs,
		}
	case domain.EntityKindInvoice:
		return []View{ViewDashboardStats, ViewRevenueByMonth}
	case domain.EntityKindInventoryItem, domain.EntityKindStockUsageRecord:
		return []View{ViewLowStockItems, ViewInventoryUsageReport, ViewStockReconciliation}
	}
	return nil
}

// Key addresses one cache entry: a view plus its canonical parameter string.
// Two keys with the same view but different params are cached separately and
// invalidated together.
type Key struct {
	View   View
	Params string
}

// NewKey builds a key. params must already be canonical.
func NewKey(view View, params string) Key {
	return Key{View: view, Params: params}
}

func (k Key) String() string {
	if k.Params == "" {
		return string(k.View)
	}
	return string(k.View) + "?" + k.Params
}
