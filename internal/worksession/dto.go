package worksession

import (
	"github.com/worklink/worklink-backend/internal/core/common/validation"
)

type CreateSessionDTO struct {
	JobID        string `json:"job_id"`
	DailyPayment int64  `json:"daily_payment"`
}

func (d CreateSessionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("job_id", d.JobID).Required()
	v.Field("daily_payment", d.DailyPayment).Positive()
	return v.Validate()
}

// NotesDTO carries the optional free-text notes on request-start and
// request-end.
type NotesDTO struct {
	Notes *string `json:"notes,omitempty"`
}

// ApproveDTO is shared by approve-start and approve-end. Approved defaults
// to true when the body omits it.
type ApproveDTO struct {
	Approved      *bool   `json:"approved,omitempty"`
	EmployerNotes *string `json:"employer_notes,omitempty"`
}

func (d ApproveDTO) IsApproved() bool {
	if d.Approved == nil {
		return true
	}
	return *d.Approved
}

// ListFilter scopes a session listing to a principal plus an optional
// derived status.
type ListFilter struct {
	Status string
	Skip   int
	Limit  int
}
