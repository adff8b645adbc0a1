package aggregate

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// TechnicianStats is one row of the technician performance report.
type TechnicianStats struct {
	TechnicianID   uuid.UUID
	TechnicianName string
	AssignedJobs   int
	CompletedJobs  int
}

// TechnicianPerformance returns one row per technician, in input order,
// including technicians without assigned jobs. Jobs assigned to an unknown
// technician are not attributed to anyone.
func TechnicianPerformance(technicians []domain.Technician, jobs []domain.Job) []TechnicianStats {
	type tally struct{ assigned, completed int }
	tallies := make(map[uuid.UUID]*tally, len(technicians))
	for _, t := range technicians {
		tallies[t.ID] = &tally{}
	}

	for _, j := range jobs {
		if j.AssignedTechnician == nil {
			continue
		}
		tl, ok := tallies[*j.AssignedTechnician]
		if !ok {
			continue
		}
		tl.assigned++
		if j.Status == domain.JobStatusCompleted {
			tl.completed++
		}
	}

	out := make([]TechnicianStats, len(technicians))
	for i, t := range technicians {
		tl := tallies[t.ID]
		out[i] = TechnicianStats{
			TechnicianID:   t.ID,
			TechnicianName: t.Name,
			AssignedJobs:   tl.assigned,
			CompletedJobs:  tl.completed,
		}
	}
	return out
}
