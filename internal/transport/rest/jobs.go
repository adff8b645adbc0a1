package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/aggregate"
	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
	"github.com/heartmarshall/fieldservice-backend/internal/transport/dataloader"
)

type jobService interface {
	ListJobs(ctx context.Context, f domain.JobFilter) ([]domain.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	CreateJob(ctx context.Context, input fieldops.JobInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, input fieldops.JobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

// JobHandler serves job endpoints. List and Get join customer and
// technician names and expect the dataloader middleware on their routes.
type JobHandler struct {
	jobs jobService
	log  *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs jobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, log: logger.With("handler", "jobs")}
}

type jobRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CustomerID         string     `json:"customerId"`
	AssignedTechnician *string    `json:"assignedTechnician"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	ScheduledDate      *time.Time `json:"scheduledDate"`
	Location           string     `json:"location"`
	Notes              string     `json:"notes"`
}

func (req jobRequest) input() (fieldops.JobInput, error) {
	customerID, err := bodyUUID("customer_id", req.CustomerID)
	if err != nil {
		return fieldops.JobInput{}, err
	}
	technician, err := bodyUUIDPtr("assigned_technician", req.AssignedTechnician)
	if err != nil {
		return fieldops.JobInput{}, err
	}
	return fieldops.JobInput{
		Title:              req.Title,
		Description:        req.Description,
		CustomerID:         customerID,
		AssignedTechnician: technician,
		Status:             domain.JobStatus(req.Status),
		Priority:           domain.JobPriority(req.Priority),
		ScheduledDate:      req.ScheduledDate,
		Location:           req.Location,
		Notes:              req.Notes,
	}, nil
}

// List returns the jobs matching the query filter.
// GET /api/jobs?status=&priority=&customer=&technician=&from=&to=
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseJobFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	jobs, err := h.jobs.ListJobs(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := joinNames(r.Context(), jobs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Get returns one job with its customer and technician names.
// GET /api/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "job")
	if !ok {
		return
	}

	j, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := joinNames(r.Context(), []domain.Job{*j})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out[0])
}

// Create stores a new job.
// POST /api/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := req.input()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	j, err := h.jobs.CreateJob(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJobResponse(*j))
}

// Update replaces the writable fields of a job.
// PUT /api/jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "job")
	if !ok {
		return
	}

	var req jobRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, err := req.input()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	j, err := h.jobs.UpdateJob(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(*j))
}

// Delete removes a job.
// DELETE /api/jobs/{id}
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "job")
	if !ok {
		return
	}

	if err := h.jobs.DeleteJob(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// joinNames resolves customer and technician names through the request's
// loaders. All loads are issued before any is awaited so they batch.
func joinNames(ctx context.Context, jobs []domain.Job) ([]jobResponse, error) {
	loaders := dataloader.FromContext(ctx)

	type pending struct {
		customer   func() (*domain.Customer, error)
		technician func() (*domain.Technician, error)
	}
	waits := make([]pending, len(jobs))
	for i, j := range jobs {
		waits[i].customer = loaders.CustomerByID.Load(ctx, j.CustomerID)
		if j.AssignedTechnician != nil {
			waits[i].technician = loaders.TechnicianByID.Load(ctx, *j.AssignedTechnician)
		}
	}

	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)

		c, err := waits[i].customer()
		if err != nil {
			return nil, err
		}
		out[i].CustomerName = aggregate.UnknownCustomer
		if c != nil {
			out[i].CustomerName = c.Name
		}

		if waits[i].technician == nil {
			out[i].TechnicianName = aggregate.Unassigned
			continue
		}
		t, err := waits[i].technician()
		if err != nil {
			return nil, err
		}
		out[i].TechnicianName = aggregate.UnknownTechnician
		if t != nil {
			out[i].TechnicianName = t.Name
		}
	}
	return out, nil
}

func parseJobFilter(r *http.Request) (domain.JobFilter, error) {
	var f domain.JobFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		s := domain.JobStatus(v)
		f.Status = &s
	}
	if v := q.Get("priority"); v != "" {
		p := domain.JobPriority(v)
		f.Priority = &p
	}
	if v := q.Get("customer"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, domain.NewValidationError("customer", "must be a uuid")
		}
		f.CustomerID = &id
	}
	if v := q.Get("technician"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, domain.NewValidationError("technician", "must be a uuid")
		}
		f.TechnicianID = &id
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, domain.NewValidationError("from", "must be RFC 3339")
		}
		f.ScheduledFrom = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, domain.NewValidationError("to", "must be RFC 3339")
		}
		f.ScheduledTo = &t
	}
	return f, nil
}
