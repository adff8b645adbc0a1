package inventory

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyMutationFunc func(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error

	calls struct {
		NotifyMutation []struct {
			Ctx  context.Context
			Kind domain.EntityKind
			ID   uuid.UUID
		}
	}
	lockNotifyMutation sync.RWMutex
}

func (mock *notifierMock) NotifyMutation(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error {
	if mock.NotifyMutationFunc == nil {
		panic("notifierMock.NotifyMutationFunc: method is nil but notifier.NotifyMutation was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.EntityKind
		ID   uuid.UUID
	}{
		Ctx:  ctx,
		Kind: kind,
		ID:   id,
	}
	mock.lockNotifyMutation.Lock()
	mock.calls.NotifyMutation = append(mock.calls.NotifyMutation, callInfo)
	mock.lockNotifyMutation.Unlock()
	return mock.NotifyMutationFunc(ctx, kind, id)
}

// NotifyMutationCalls gets all the calls that were made to NotifyMutation.
func (mock *notifierMock) NotifyMutationCalls() []struct {
	Ctx  context.Context
	Kind domain.EntityKind
	ID   uuid.UUID
} {
	var calls []struct {
		Ctx  context.Context
		Kind domain.EntityKind
		ID   uuid.UUID
	}
	mock.lockNotifyMutation.RLock()
	calls = mock.calls.NotifyMutation
	mock.lockNotifyMutation.RUnlock()
	return calls
}
