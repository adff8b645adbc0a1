package inventory

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"sync"
)

var _ inventoryRepo = &inventoryRepoMock{}

type inventoryRepoMock struct {
	AdjustStockFunc    func(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error)
	CreateUsageFunc    func(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	ListFunc           func(ctx context.Context) ([]domain.InventoryItem, error)
	ListUsageFunc      func(ctx context.Context) ([]domain.StockUsageRecord, error)
	ListUsageByJobFunc func(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error)
	SetStockFunc       func(ctx context.Context, id uuid.UUID, quantity int) error

	calls struct {
		AdjustStock []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Delta int
		}
		CreateUsage []struct {
			Ctx context.Context
			U   *domain.StockUsageRecord
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
		}
		ListUsage []struct {
			Ctx context.Context
		}
		ListUsageByJob []struct {
			Ctx   context.Context
			JobID uuid.UUID
		}
		SetStock []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Quantity int
		}
	}
	lockAdjustStock    sync.RWMutex
	lockCreateUsage    sync.RWMutex
	lockGetByID        sync.RWMutex
	lockList           sync.RWMutex
	lockListUsage      sync.RWMutex
	lockListUsageByJob sync.RWMutex
	lockSetStock       sync.RWMutex
}

func (mock *inventoryRepoMock) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.InventoryItem, error) {
	if mock.AdjustStockFunc == nil {
		panic("inventoryRepoMock.AdjustStockFunc: method is nil but inventoryRepo.AdjustStock was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Delta int
	}{
		Ctx:   ctx,
		ID:    id,
		Delta: delta,
	}
	mock.lockAdjustStock.Lock()
	mock.calls.AdjustStock = append(mock.calls.AdjustStock, callInfo)
	mock.lockAdjustStock.Unlock()
	return mock.AdjustStockFunc(ctx, id, delta)
}

// AdjustStockCalls gets all the calls that were made to AdjustStock.
func (mock *inventoryRepoMock) AdjustStockCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Delta int
} {
	var calls []struct {
		Ctx   context.Context
		ID    uuid.UUID
		Delta int
	}
	mock.lockAdjustStock.RLock()
	calls = mock.calls.AdjustStock
	mock.lockAdjustStock.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) CreateUsage(ctx context.Context, u *domain.StockUsageRecord) (*domain.StockUsageRecord, error) {
	if mock.CreateUsageFunc == nil {
		panic("inventoryRepoMock.CreateUsageFunc: method is nil but inventoryRepo.CreateUsage was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.StockUsageRecord
	}{
		Ctx: ctx,
		U:   u,
	}
	mock.lockCreateUsage.Lock()
	mock.calls.CreateUsage = append(mock.calls.CreateUsage, callInfo)
	mock.lockCreateUsage.Unlock()
	return mock.CreateUsageFunc(ctx, u)
}

// CreateUsageCalls gets all the calls that were made to CreateUsage.
func (mock *inventoryRepoMock) CreateUsageCalls() []struct {
	Ctx context.Context
	U   *domain.StockUsageRecord
} {
	var calls []struct {
		Ctx context.Context
		U   *domain.StockUsageRecord
	}
	mock.lockCreateUsage.RLock()
	calls = mock.calls.CreateUsage
	mock.lockCreateUsage.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	if mock.GetByIDFunc == nil {
		panic("inventoryRepoMock.GetByIDFunc: method is nil but inventoryRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

// GetByIDCalls gets all the calls that were made to GetByID.
func (mock *inventoryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) List(ctx context.Context) ([]domain.InventoryItem, error) {
	if mock.ListFunc == nil {
		panic("inventoryRepoMock.ListFunc: method is nil but inventoryRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

// ListCalls gets all the calls that were made to List.
func (mock *inventoryRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) ListUsage(ctx context.Context) ([]domain.StockUsageRecord, error) {
	if mock.ListUsageFunc == nil {
		panic("inventoryRepoMock.ListUsageFunc: method is nil but inventoryRepo.ListUsage was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListUsage.Lock()
	mock.calls.ListUsage = append(mock.calls.ListUsage, callInfo)
	mock.lockListUsage.Unlock()
	return mock.ListUsageFunc(ctx)
}

// ListUsageCalls gets all the calls that were made to ListUsage.
func (mock *inventoryRepoMock) ListUsageCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListUsage.RLock()
	calls = mock.calls.ListUsage
	mock.lockListUsage.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) ListUsageByJob(ctx context.Context, jobID uuid.UUID) ([]domain.StockUsageRecord, error) {
	if mock.ListUsageByJobFunc == nil {
		panic("inventoryRepoMock.ListUsageByJobFunc: method is nil but inventoryRepo.ListUsageByJob was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		JobID uuid.UUID
	}{
		Ctx:   ctx,
		JobID: jobID,
	}
	mock.lockListUsageByJob.Lock()
	mock.calls.ListUsageByJob = append(mock.calls.ListUsageByJob, callInfo)
	mock.lockListUsageByJob.Unlock()
	return mock.ListUsageByJobFunc(ctx, jobID)
}

// ListUsageByJobCalls gets all the calls that were made to ListUsageByJob.
func (mock *inventoryRepoMock) ListUsageByJobCalls() []struct {
	Ctx   context.Context
	JobID uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		JobID uuid.UUID
	}
	mock.lockListUsageByJob.RLock()
	calls = mock.calls.ListUsageByJob
	mock.lockListUsageByJob.RUnlock()
	return calls
}

func (mock *inventoryRepoMock) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if mock.SetStockFunc == nil {
		panic("inventoryRepoMock.SetStockFunc: method is nil but inventoryRepo.SetStock was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Quantity int
	}{
		Ctx:      ctx,
		ID:       id,
		Quantity: quantity,
	}
	mock.lockSetStock.Lock()
	mock.calls.SetStock = append(mock.calls.SetStock, callInfo)
	mock.lockSetStock.Unlock()
	return mock.SetStockFunc(ctx, id, quantity)
}

// SetStockCalls gets all the calls that were made to SetStock.
func (mock *inventoryRepoMock) SetStockCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Quantity int
} {
	var calls []struct {
		Ctx      context.Context
		ID       uuid.UUID
		Quantity int
	}
	mock.lockSetStock.RLock()
	calls = mock.calls.SetStock
	mock.lockSetStock.RUnlock()
	return calls
}
