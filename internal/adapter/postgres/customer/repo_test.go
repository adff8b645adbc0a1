package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/customer"
	"github.com/heartmarshall/fieldservice-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

func newRepo(t *testing.T) *customer.Repo {
	t.Helper()
	return customer.New(testhelper.SetupTestDB(t))
}

func TestRepo_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Customer{
		Name:         "Harbor Cafe " + uuid.NewString()[:6],
		Company:      "Harbor Holdings",
		Email:        "owner@harbor.test",
		CustomerType: domain.CustomerTypeCommercial,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID == uuid.Nil || created.CreatedAt.IsZero() {
		t.Fatalf("Create did not fill id/timestamps: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.CustomerType != domain.CustomerTypeCommercial || got.Company != "Harbor Holdings" {
		t.Errorf("GetByID mismatch: %+v", got)
	}

	got.Phone = "555-0199"
	updated, err := repo.Update(ctx, got)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.Phone != "555-0199" {
		t.Errorf("Phone not updated: %q", updated.Phone)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after delete: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: want ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByIDs(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := customer.New(pool)
	a := testhelper.SeedCustomer(t, pool)
	b := testhelper.SeedCustomer(t, pool)

	got, err := repo.GetByIDs(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs: want 2 rows, got %d", len(got))
	}

	empty, err := repo.GetByIDs(context.Background(), nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("GetByIDs(nil) = %v, %v; want empty slice", empty, err)
	}
}

func TestRepo_Search(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()
	marker := "zq" + uuid.NewString()[:6]

	if _, err := repo.Create(ctx, &domain.Customer{Name: "Ann " + marker, CustomerType: domain.CustomerTypeResidential}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Customer{Name: "Bob", Email: marker + "@mail.test", CustomerType: domain.CustomerTypeResidential}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.Search(ctx, marker)
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Search(%q): want 2, got %d", marker, len(found))
	}

	none, err := repo.Search(ctx, "%"+marker+"_nothing")
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("escaped LIKE pattern should match nothing, got %d", len(none))
	}
}
