package aggregate

import (
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// Placeholder labels substituted when a reference does not resolve.
const (
	UnknownCustomer   = "Unknown customer"
	UnknownTechnician = "Unknown technician"
	Unassigned        = "Unassigned"
	UnknownItem       = "Unknown item"
)

// StatusCount is one row of the job status histogram.
type StatusCount struct {
	Status domain.JobStatus
	Count  int
}

// JobStatusSummary returns one row per job status in the fixed enum order.
// Statuses with no jobs are kept with a zero count. Jobs carrying a status
// outside the enum are not counted in any row.
func JobStatusSummary(jobs []domain.Job) []StatusCount {
	statuses := domain.AllJobStatuses()
	counts := make(map[domain.JobStatus]int, len(statuses))
	for _, j := range jobs {
		counts[j.Status]++
	}

	rows := make([]StatusCount, len(statuses))
	for i, s := range statuses {
		rows[i] = StatusCount{Status: s, Count: counts[s]}
	}
	return rows
}

// JobSummary is a job joined with the display names of its references.
type JobSummary struct {
	Job            domain.Job
	CustomerName   string
	TechnicianName string
}

// RecentJobs returns up to limit jobs ordered by UpdatedAt descending, joined
// with customer and technician names. Unresolved references get placeholder
// names. A non-positive limit returns every job.
func RecentJobs(jobs []domain.Job, customers []domain.Customer, technicians []domain.Technician, limit int) []JobSummary {
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b domain.Job) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	names := NewNames(customers, technicians)
	out := make([]JobSummary, len(sorted))
	for i, j := range sorted {
		out[i] = names.Summarize(j)
	}
	return out
}

// Names resolves customer and technician ids to display names.
type Names struct {
	customers   map[uuid.UUID]string
	technicians map[uuid.UUID]string
}

// NewNames indexes the given snapshots by id.
func NewNames(customers []domain.Customer, technicians []domain.Technician) Names {
	n := Names{
		customers:   make(map[uuid.UUID]string, len(customers)),
		technicians: make(map[uuid.UUID]string, len(technicians)),
	}
	for _, c := range customers {
		n.customers[c.ID] = c.Name
	}
	for _, t := range technicians {
		n.technicians[t.ID] = t.Name
	}
	return n
}

// Customer returns the customer's name or UnknownCustomer.
func (n Names) Customer(id uuid.UUID) string {
	if name, ok := n.customers[id]; ok {
		return name
	}
	return UnknownCustomer
}

// Technician returns the technician's name, Unassigned for a nil id, or
// UnknownTechnician for an id that does not resolve.
func (n Names) Technician(id *uuid.UUID) string {
	if id == nil {
		return Unassigned
	}
	if name, ok := n.technicians[*id]; ok {
		return name
	}
	return UnknownTechnician
}

// Summarize joins a job with its reference names.
func (n Names) Summarize(j domain.Job) JobSummary {
	return JobSummary{
		Job:            j,
		CustomerName:   n.Customer(j.CustomerID),
		TechnicianName: n.Technician(j.AssignedTechnician),
	}
}
