package application

import (
	"github.com/worklink/worklink-backend/internal/core/common/validation"
)

type CreateApplicationDTO struct {
	JobID string `json:"job_id"`
}

func (d CreateApplicationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("job_id", d.JobID).Required()
	return v.Validate()
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().OneOf(StatusPending, StatusReviewing, StatusAccepted, StatusRejected)
	return v.Validate()
}

// ListFilter scopes a listing to a principal plus an optional status.
type ListFilter struct {
	Status string
	Skip   int
	Limit  int
}
