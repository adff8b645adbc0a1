package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Customer by ID
// ---------------------------------------------------------------------------

func newCustomerBatchFn(repo customerRepo) dataloader.BatchFunc[uuid.UUID, *domain.Customer] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Customer] {
		customers, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Customer](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.Customer, len(customers))
		for i := range customers {
			byID[customers[i].ID] = &customers[i]
		}

		return mapResults(keys, byID, nilValue[domain.Customer])
	}
}

// ---------------------------------------------------------------------------
// Technician by ID
// ---------------------------------------------------------------------------

func newTechnicianBatchFn(repo technicianRepo) dataloader.BatchFunc[uuid.UUID, *domain.Technician] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Technician] {
		techs, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Technician](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.Technician, len(techs))
		for i := range techs {
			byID[techs[i].ID] = &techs[i]
		}

		return mapResults(keys, byID, nilValue[domain.Technician])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns n results all carrying the same error.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// nilValue marks a dangling reference. Callers render a placeholder name.
func nilValue[T any]() *T {
	return nil
}
