// Package aggregate implements the pure functions that turn entity snapshots
// into derived views: dashboard KPIs, job status histogram, revenue by month,
// technician performance and inventory reports.
//
// Every function is deterministic in its inputs, never mutates them and never
// fails: an empty collection yields zero-valued aggregates. Rows whose foreign
// keys do not resolve are still counted in structural aggregates but are left
// out of figures that need a successful join.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
)

// DefaultRevenueWindow is the trailing window used for the dashboard revenue KPI.
const DefaultRevenueWindow = 30 * 24 * time.Hour

// Calendar fixes the reference timezone used for day and month boundaries and
// the length of the trailing revenue window.
type Calendar struct {
	Location      *time.Location
	RevenueWindow time.Duration
}

// DefaultCalendar returns a UTC calendar with a 30-day revenue window.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.UTC, RevenueWindow: DefaultRevenueWindow}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Calendar) window() time.Duration {
	if c.RevenueWindow <= 0 {
		return DefaultRevenueWindow
	}
	return c.RevenueWindow
}

// Day returns the [start, end) bounds of t's calendar day in the reference
// location. A DST transition day is 23 or 25 hours long.
func (c Calendar) Day(t time.Time) (start, end time.Time) {
	loc := c.location()
	return schedule.DayStart(t, loc), schedule.NextDayStart(t, loc)
}

// SameDay reports whether a falls on b's calendar day in the reference
// location.
func (c Calendar) SameDay(a, b time.Time) bool {
	start, end := c.Day(b)
	return !a.Before(start) && a.Before(end)
}

// MonthKey returns the "YYYY-MM" label of t in the reference location.
func (c Calendar) MonthKey(t time.Time) string {
	return t.In(c.location()).Format("2006-01")
}

// DashboardStats holds the headline KPIs of the dashboard.
type DashboardStats struct {
	TotalOpenJobs      int
	TotalJobs          int
	CompletedJobsToday int
	PendingInvoices    int
	// TotalRevenueThisMonth sums paid invoices issued within the trailing
	// revenue window ending at now, not the calendar month.
	TotalRevenueThisMonth decimal.Decimal
	TotalCustomers        int
	TotalTechnicians      int
}

// ComputeDashboardStats derives the dashboard KPIs from full snapshots.
func ComputeDashboardStats(
	jobs []domain.Job,
	customers []domain.Customer,
	technicians []domain.Technician,
	invoices []domain.Invoice,
	now time.Time,
	cal Calendar,
) DashboardStats {
	stats := DashboardStats{
		TotalJobs:             len(jobs),
		TotalCustomers:        len(customers),
		TotalTechnicians:      len(technicians),
		TotalRevenueThisMonth: decimal.Zero,
	}

	todayStart, todayEnd := cal.Day(now)
	for _, j := range jobs {
		if j.Status.IsOpen() {
			stats.TotalOpenJobs++
		}
		if j.Status == domain.JobStatusCompleted && !j.UpdatedAt.Before(todayStart) && j.UpdatedAt.Before(todayEnd) {
			stats.CompletedJobsToday++
		}
	}

	windowStart := now.Add(-cal.window())
	for _, inv := range invoices {
		if !inv.PaymentStatus.IsSettled() {
			stats.PendingInvoices++
			continue
		}
		if inv.IssueDate.After(windowStart) && !inv.IssueDate.After(now) {
			stats.TotalRevenueThisMonth = stats.TotalRevenueThisMonth.Add(inv.Total)
		}
	}

	return stats
}
