package dataloader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	dl "github.com/heartmarshall/fieldservice-backend/internal/transport/dataloader"
)

// ---------------------------------------------------------------------------
// Mock repos
// ---------------------------------------------------------------------------

type mockCustomerRepo struct {
	mu     sync.Mutex
	calls  [][]uuid.UUID
	result []domain.Customer
	err    error
}

func (m *mockCustomerRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Customer, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ids)
	m.mu.Unlock()
	return m.result, m.err
}

type mockTechnicianRepo struct {
	result []domain.Technician
	err    error
}

func (m *mockTechnicianRepo) GetByIDs(_ context.Context, _ []uuid.UUID) ([]domain.Technician, error) {
	return m.result, m.err
}

func emptyRepos() *dl.Repos {
	return &dl.Repos{
		Customers:   &mockCustomerRepo{},
		Technicians: &mockTechnicianRepo{},
	}
}

// ---------------------------------------------------------------------------
// Context & middleware
// ---------------------------------------------------------------------------

func TestFromContext_ReturnsLoaders(t *testing.T) {
	loaders := dl.NewLoaders(emptyRepos())
	ctx := dl.WithLoaders(context.Background(), loaders)

	assert.Same(t, loaders, dl.FromContext(ctx))
}

func TestFromContext_PanicsWhenMissing(t *testing.T) {
	assert.Panics(t, func() { dl.FromContext(context.Background()) })
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	mw := dl.Middleware(emptyRepos())

	var gotLoaders *dl.Loaders
	handler := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotLoaders = dl.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotLoaders)
	assert.NotNil(t, gotLoaders.CustomerByID)
	assert.NotNil(t, gotLoaders.TechnicianByID)
}

// ---------------------------------------------------------------------------
// Loaders
// ---------------------------------------------------------------------------

func TestCustomerLoader_BatchesAndMaps(t *testing.T) {
	a, b, missing := uuid.New(), uuid.New(), uuid.New()
	repo := &mockCustomerRepo{result: []domain.Customer{
		{ID: b, Name: "Bob"},
		{ID: a, Name: "Alice"},
	}}
	loaders := dl.NewLoaders(&dl.Repos{Customers: repo, Technicians: &mockTechnicianRepo{}})
	ctx := context.Background()

	thunks := []func() (*domain.Customer, error){
		loaders.CustomerByID.Load(ctx, a),
		loaders.CustomerByID.Load(ctx, b),
		loaders.CustomerByID.Load(ctx, missing),
	}

	got := make([]*domain.Customer, len(thunks))
	for i, th := range thunks {
		c, err := th()
		require.NoError(t, err)
		got[i] = c
	}

	require.NotNil(t, got[0])
	assert.Equal(t, "Alice", got[0].Name)
	require.NotNil(t, got[1])
	assert.Equal(t, "Bob", got[1].Name)
	assert.Nil(t, got[2])
	assert.Len(t, repo.calls, 1)
}

func TestTechnicianLoader_PropagatesError(t *testing.T) {
	repoErr := errors.New("db down")
	loaders := dl.NewLoaders(&dl.Repos{
		Customers:   &mockCustomerRepo{},
		Technicians: &mockTechnicianRepo{err: repoErr},
	})

	_, err := loaders.TechnicianByID.Load(context.Background(), uuid.New())()

	assert.ErrorIs(t, err, repoErr)
}
