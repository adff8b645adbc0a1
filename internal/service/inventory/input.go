package inventory

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
)

// RecordUsageInput holds parameters for recording stock consumed by a job.
type RecordUsageInput struct {
	ItemID   uuid.UUID
	JobID    uuid.UUID
	Quantity int
}

// Validate validates the record usage input.
func (i RecordUsageInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.JobID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "job_id", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
