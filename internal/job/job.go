package job

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/worklink/worklink-backend/internal/core/common/textutil"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrNotJobOwner = errors.New("job belongs to another employer")
)

// Job is a posting in the catalog. Closing a job flips its status; the row
// is never deleted outside the admin cascade.
type Job struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:50"`
	EmployerID          string     `json:"employer_id" gorm:"column:employer_id;size:50;index;not null"`
	Title               string     `json:"title" gorm:"size:255;index;not null"`
	Slug                string     `json:"slug" gorm:"size:300;uniqueIndex;not null"`
	Description         string     `json:"description" gorm:"type:text;not null"`
	Category            string     `json:"category" gorm:"size:100;index;not null"`
	District            string     `json:"district" gorm:"size:50;index;not null"`
	Salary              int64      `json:"salary" gorm:"not null"`
	Status              string     `json:"status" gorm:"size:50;index;default:active"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" gorm:"column:application_deadline"`
	CreatedAt           time.Time  `json:"created_at" gorm:"column:created_at;index"`
}

func (Job) TableName() string {
	return "jobs"
}

// NewJob builds an active posting with a generated id and a slug derived from
// the title plus the id prefix.
func NewJob(employerID string, dto CreateJobDTO) *Job {
	id := uuid.NewString()
	return &Job{
		ID:                  id,
		EmployerID:          employerID,
		Title:               dto.Title,
		Slug:                textutil.JobSlug(dto.Title, id),
		Description:         dto.Description,
		Category:            dto.Category,
		District:            dto.District,
		Salary:              dto.Salary,
		Status:              StatusActive,
		ApplicationDeadline: dto.ApplicationDeadline,
		CreatedAt:           time.Now().UTC(),
	}
}

// DeadlinePassed reports whether the application deadline is behind the given
// instant. Stored deadlines may be naive, so both sides are normalized to UTC
// before comparing. A job without a deadline never expires.
func (j *Job) DeadlinePassed(now time.Time) bool {
	if j.ApplicationDeadline == nil {
		return false
	}
	deadline := j.ApplicationDeadline.UTC()
	return deadline.Before(now.UTC())
}

// Detail is a posting joined with its employer's company name.
type Detail struct {
	Job
	EmployerName string `json:"employer_name"`
}
