package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// Event is the wire form of a committed entity mutation.
type Event struct {
	Kind   string `json:"kind"`
	Action string `json:"action,omitempty"`
	ID     string `json:"id"`
}

// ParseEvent decodes and validates a mutation event. Action is optional;
// when present it must be created, updated or deleted.
func ParseEvent(value []byte) (domain.Mutation, error) {
	var ev Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return domain.Mutation{}, fmt.Errorf("decode event: %w", err)
	}

	kind := domain.EntityKind(ev.Kind)
	if !kind.IsValid() {
		return domain.Mutation{}, domain.NewValidationError("kind", fmt.Sprintf("unknown entity kind %q", ev.Kind))
	}

	action := domain.MutationAction(ev.Action)
	if ev.Action == "" {
		action = domain.MutationUpdated
	} else if !action.IsValid() {
		return domain.Mutation{}, domain.NewValidationError("action", fmt.Sprintf("unknown action %q", ev.Action))
	}

	id, err := uuid.Parse(ev.ID)
	if err != nil {
		return domain.Mutation{}, domain.NewValidationError("id", "must be a uuid")
	}

	return domain.Mutation{Kind: kind, Action: action, ID: id}, nil
}
