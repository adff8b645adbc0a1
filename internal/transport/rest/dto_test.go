package rest

import (
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
)

func TestViewData_Reconciliation(t *testing.T) {
	t.Parallel()

	item := uuid.New()
	got, ok := viewData(aggregate.Reconciliation{
		Checked: 3,
		Drift:   []aggregate.StockDrift{{ItemID: item, ItemName: "Filter", Recorded: 5, Expected: 4, TotalUsed: 6}},
	}).(reconciliationResponse)
	if !ok {
		t.Fatalf("expected reconciliationResponse, got %T", got)
	}

	if got.Consistent {
		t.Error("expected drift to make the result inconsistent")
	}
	if len(got.Drift) != 1 || got.Drift[0].ItemID != item.String() || got.Drift[0].Expected != 4 {
		t.Errorf("unexpected drift: %+v", got.Drift)
	}
	if got.Dangling == nil {
		t.Error("expected an empty, non-nil dangling list")
	}
}

func TestViewData_RecentJobsCarryNames(t *testing.T) {
	t.Parallel()

	got, ok := viewData([]aggregate.JobSummary{{
		Job:            domain.Job{ID: uuid.New(), Title: "Fix AC", Status: domain.JobStatusCompleted},
		CustomerName:   "James Wilson",
		TechnicianName: aggregate.Unassigned,
	}}).([]jobResponse)
	if !ok {
		t.Fatalf("expected []jobResponse, got %T", got)
	}

	if got[0].CustomerName != "James Wilson" || got[0].TechnicianName != aggregate.Unassigned {
		t.Errorf("unexpected names: %+v", got[0])
	}
	if got[0].Status != "completed" {
		t.Errorf("expected status completed, got %q", got[0].Status)
	}
}

func TestViewData_ScheduleDays(t *testing.T) {
	t.Parallel()

	got, ok := viewData([]schedule.Day{{Date: "2024-03-15", Jobs: []domain.Job{{ID: uuid.New()}}}}).([]dayResponse)
	if !ok {
		t.Fatalf("expected []dayResponse, got %T", got)
	}
	if got[0].Date != "2024-03-15" || len(got[0].Jobs) != 1 {
		t.Errorf("unexpected day: %+v", got[0])
	}
}

func TestViewData_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	if got := viewData(42); got != 42 {
		t.Errorf("expected passthrough, got %v", got)
	}
}
