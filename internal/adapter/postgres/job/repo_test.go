package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/job"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

func TestRepo_CreateWithOptionalFields(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := job.New(pool)
	ctx := context.Background()
	cust := testhelper.SeedCustomer(t, pool)
	tech := testhelper.SeedTechnician(t, pool)
	at := time.Date(2024, 5, 2, 13, 30, 0, 0, time.UTC)

	created, err := repo.Create(ctx, &domain.Job{
		Title:              "Replace water heater",
		CustomerID:         cust.ID,
		AssignedTechnician: &tech.ID,
		Status:             domain.JobStatusNew,
		Priority:           domain.JobPriorityUrgent,
		ScheduledDate:      &at,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.AssignedTechnician == nil || *created.AssignedTechnician != tech.ID {
		t.Errorf("AssignedTechnician mismatch: %v", created.AssignedTechnician)
	}
	if created.ScheduledDate == nil || !created.ScheduledDate.Equal(at) {
		t.Errorf("ScheduledDate mismatch: %v", created.ScheduledDate)
	}

	created.AssignedTechnician = nil
	created.ScheduledDate = nil
	created.Status = domain.JobStatusOnHold
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.AssignedTechnician != nil || updated.ScheduledDate != nil {
		t.Errorf("expected nullable fields cleared: %+v", updated)
	}
	if updated.Status != domain.JobStatusOnHold {
		t.Errorf("Status = %q", updated.Status)
	}
}

func TestRepo_ListByFilter(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := job.New(pool)
	ctx := context.Background()
	cust := testhelper.SeedCustomer(t, pool)
	first := testhelper.SeedJob(t, pool, cust.ID)
	second := testhelper.SeedJob(t, pool, cust.ID)
	testhelper.SeedJob(t, pool, testhelper.SeedCustomer(t, pool).ID)

	got, err := repo.ListByFilter(ctx, domain.JobFilter{CustomerID: &cust.ID})
	if err != nil {
		t.Fatalf("ListByFilter: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 jobs for customer, got %d", len(got))
	}
	ids := map[uuid.UUID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("unexpected jobs: %v", ids)
	}

	completed := domain.JobStatusCompleted
	none, err := repo.ListByFilter(ctx, domain.JobFilter{CustomerID: &cust.ID, Status: &completed})
	if err != nil {
		t.Fatalf("ListByFilter: unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("want no completed jobs, got %d", len(none))
	}
}

func TestRepo_DeleteMissing(t *testing.T) {
	t.Parallel()
	repo := job.New(testhelper.SetupTestDB(t))

	if err := repo.Delete(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete: want ErrNotFound, got %v", err)
	}
}
