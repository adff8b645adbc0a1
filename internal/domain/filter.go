package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobFilter narrows job listings. Nil fields do not filter.
// The scheduled range is inclusive on both ends.
type JobFilter struct {
	Status        *JobStatus
	Priority      *JobPriority
	CustomerID    *uuid.UUID
	TechnicianID  *uuid.UUID
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// Matches reports whether j satisfies every set field of the filter.
func (f JobFilter) Matches(j Job) bool {
	if f.Status != nil && j.Status != *f.Status {
		return false
	}
	if f.Priority != nil && j.Priority != *f.Priority {
		return false
	}
	if f.CustomerID != nil && j.CustomerID != *f.CustomerID {
		return false
	}
	if f.TechnicianID != nil && !j.IsAssignedTo(*f.TechnicianID) {
		return false
	}
	if f.ScheduledFrom != nil || f.ScheduledTo != nil {
		if !j.IsScheduled() {
			return false
		}
		if f.ScheduledFrom != nil && j.ScheduledDate.Before(*f.ScheduledFrom) {
			return false
		}
		if f.ScheduledTo != nil && j.ScheduledDate.After(*f.ScheduledTo) {
			return false
		}
	}
	return true
}

// InvoiceFilter narrows invoice listings. Nil fields do not filter.
type InvoiceFilter struct {
	CustomerID *uuid.UUID
	Status     *PaymentStatus
}

// Matches reports whether inv satisfies every set field of the filter.
func (f InvoiceFilter) Matches(inv Invoice) bool {
	if f.CustomerID != nil && inv.CustomerID != *f.CustomerID {
		return false
	}
	if f.Status != nil && inv.PaymentStatus != *f.Status {
		return false
	}
	return true
}
