package inventory

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"sync"
)

var _ jobRepo = &jobRepoMock{}

type jobRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *jobRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	if mock.GetByIDFunc == nil {
		panic("jobRepoMock.GetByIDFunc: method is nil but jobRepo.GetByID was just called")
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
func (mock *jobRepoMock) GetByIDCalls() []struct {
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
