package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a residential or commercial client that jobs and invoices refer to.
type Customer struct {
	ID           uuid.UUID
	Name         string
	Company      string
	Email        string
	Phone        string
	Address      string
	CustomerType CustomerType
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Technician is a field worker that jobs may be assigned to.
type Technician struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Specialization string
	Skills         []string
	Status         TechnicianStatus
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the technician can be assigned new work.
func (t Technician) IsActive() bool {
	return t.Status == TechnicianStatusActive
}
