package views

// Status tells a presentation caller how much to trust a Result.
type Status string

const (
	// StatusFresh means the value reflects every committed mutation.
	StatusFresh Status = "fresh"
	// StatusSuperseded means a mutation landed while Value was computed, so
	// it may not reflect that mutation. The next read recomputes.
	StatusSuperseded Status = "superseded"
	// StatusFallback means the recompute failed and Value is the last
	// value that was computed successfully.
	StatusFallback Status = "fallback"
	// StatusUnavailable means the recompute failed and no earlier value exists.
	StatusUnavailable Status = "unavailable"
)

// Result is the outcome of Read. Err is set for fallback and unavailable.
type Result struct {
	Value  any
	Status Status
	Err    error
}
