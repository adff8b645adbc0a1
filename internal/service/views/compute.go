package views

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

// need is the set of collections a view reads.
type need uint8

const (
	needCustomers need = 1 << iota
	needTechnicians
	needJobs
	needInvoices
	needItems
	needUsage
)

func needsOf(view viewcache.View) need {
	switch view {
	case viewcache.ViewDashboardStats:
		return needJobs | needCustomers | needTechnicians | needInvoices
	case viewcache.ViewJobStatusSummary, viewcache.ViewScheduleIndex, viewcache.ViewUpcomingJobs:
		return needJobs
	case viewcache.ViewRevenueByMonth:
		return needInvoices
	case viewcache.ViewTechnicianPerformance:
		return needTechnicians | needJobs
	case viewcache.ViewInventoryUsageReport, viewcache.ViewStockReconciliation:
		return needItems | needUsage
	case viewcache.ViewLowStockItems:
		return needItems
	case viewcache.ViewRecentJobs:
		return needJobs | needCustomers | needTechnicians
	}
	return 0
}

type snapshot struct {
	customers   []domain.Customer
	technicians []domain.Technician
	jobs        []domain.Job
	invoices    []domain.Invoice
	items       []domain.InventoryItem
	usage       []domain.StockUsageRecord
}

// load reads the collections in n concurrently.
func (s *Service) load(ctx context.Context, n need) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	if n&needCustomers != 0 {
		g.Go(func() error {
			var err error
			snap.customers, err = s.customers.List(gctx)
			if err != nil {
				return fmt.Errorf("list customers: %w", err)
			}
			return nil
		})
	}
	if n&needTechnicians != 0 {
		g.Go(func() error {
			var err error
			snap.technicians, err = s.technicians.List(gctx)
			if err != nil {
				return fmt.Errorf("list technicians: %w", err)
			}
			return nil
		})
	}
	if n&needJobs != 0 {
		g.Go(func() error {
			var err error
			snap.jobs, err = s.jobs.List(gctx)
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}
			return nil
		})
	}
	if n&needInvoices != 0 {
		g.Go(func() error {
			var err error
			snap.invoices, err = s.invoices.List(gctx)
			if err != nil {
				return fmt.Errorf("list invoices: %w", err)
			}
			return nil
		})
	}
	if n&needItems != 0 {
		g.Go(func() error {
			var err error
			snap.items, err = s.inventory.List(gctx)
			if err != nil {
				return fmt.Errorf("list inventory items: %w", err)
			}
			return nil
		})
	}
	if n&needUsage != 0 {
		g.Go(func() error {
			var err error
			snap.usage, err = s.inventory.ListUsage(gctx)
			if err != nil {
				return fmt.Errorf("list stock usage: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// compute is the viewcache.ComputeFunc. Value types per view:
//
//	dashboardStats         aggregate.DashboardStats
//	jobStatusSummary       []aggregate.StatusCount
//	revenueByMonth         []aggregate.MonthRevenue
//	technicianPerformance  []aggregate.TechnicianStats
//	inventoryUsageReport   []aggregate.ItemUsage (top usage order)
//	lowStockItems          []domain.InventoryItem
//	scheduleIndex          []schedule.Day
//	upcomingJobs           []domain.Job
//	recentJobs             []aggregate.JobSummary
//	stockReconciliation    aggregate.Reconciliation
func (s *Service) compute(ctx context.Context, key viewcache.Key) (any, error) {
	p, err := decodeParams(key.Params)
	if err != nil {
		return nil, err
	}

	n := needsOf(key.View)
	if n == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, key.View)
	}

	snap, err := s.load(ctx, n)
	if err != nil {
		return nil, err
	}
	loc := s.cfg.Location

	switch key.View {
	case viewcache.ViewDashboardStats:
		return aggregate.ComputeDashboardStats(snap.jobs, snap.customers, snap.technicians, snap.invoices, s.now(), s.cal), nil
	case viewcache.ViewJobStatusSummary:
		return aggregate.JobStatusSummary(snap.jobs), nil
	case viewcache.ViewRevenueByMonth:
		return aggregate.RevenueByMonth(snap.invoices, s.cal), nil
	case viewcache.ViewTechnicianPerformance:
		return aggregate.TechnicianPerformance(snap.technicians, snap.jobs), nil
	case viewcache.ViewInventoryUsageReport:
		return aggregate.TopUsage(aggregate.InventoryUsageReport(snap.items, snap.usage), p.Limit), nil
	case viewcache.ViewLowStockItems:
		return aggregate.LowStockItems(snap.items), nil
	case viewcache.ViewScheduleIndex:
		ix := schedule.Build(snap.jobs, loc)
		if p.Month != "" {
			return ix.Month(p.Month)
		}
		return ix.Buckets(), nil
	case viewcache.ViewUpcomingJobs:
		return schedule.Upcoming(snap.jobs, s.now(), loc, p.Limit), nil
	case viewcache.ViewRecentJobs:
		return aggregate.RecentJobs(snap.jobs, snap.customers, snap.technicians, p.Limit), nil
	case viewcache.ViewStockReconciliation:
		return aggregate.StockReconciliation(snap.items, snap.usage), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, key.View)
}
