package domain

import "github.com/google/uuid"

// Mutation describes a committed write to one entity. It is what the write
// side reports so that dependent views can be invalidated.
type Mutation struct {
	Kind   EntityKind
	Action MutationAction
	ID     uuid.UUID
}
