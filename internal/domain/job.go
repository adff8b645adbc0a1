package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job is a unit of field work for a customer.
type Job struct {
	ID                 uuid.UUID
	Title              string
	Description        string
	CustomerID         uuid.UUID
	AssignedTechnician *uuid.UUID
	Status             JobStatus
	Priority           JobPriority
	ScheduledDate      *time.Time
	Location           string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAssignedTo reports whether the job is assigned to the given technician.
func (j Job) IsAssignedTo(technicianID uuid.UUID) bool {
	return j.AssignedTechnician != nil && *j.AssignedTechnician == technicianID
}

// IsScheduled reports whether the job has a scheduled date.
func (j Job) IsScheduled() bool {
	return j.ScheduledDate != nil
}
