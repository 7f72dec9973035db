package application

import (
	"errors"
	"time"
)

// Application statuses form a closed set; the owning employer moves an
// application between them and anything outside the set is rejected.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// Statuses an applicant may still withdraw from. Once accepted or rejected
// the application is immutable from the applicant's side.
var withdrawableStatuses = map[string]bool{
	StatusPending:   true,
	StatusReviewing: true,
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

var (
	ErrNotFound       = errors.New("application not found")
	ErrDuplicate      = errors.New("already applied to this job")
	ErrDeadlinePassed = errors.New("application deadline has passed")
	ErrNotApplicant   = errors.New("application belongs to another user")
	ErrCannotWithdraw = errors.New("application can no longer be withdrawn")
)

// Application links one user to one job. At most one row exists per
// (user, job) pair, enforced by a unique index.
type Application struct {
	ID        string    `json:"id" gorm:"primaryKey;size:50"`
	UserID    string    `json:"user_id" gorm:"column:user_id;size:50;not null;uniqueIndex:idx_applications_user_job"`
	JobID     string    `json:"job_id" gorm:"column:job_id;size:50;not null;uniqueIndex:idx_applications_user_job"`
	Status    string    `json:"status" gorm:"size:50;index;default:pending"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) Withdrawable() bool {
	return withdrawableStatuses[a.Status]
}

// Detail is an application row enriched with applicant contact fields and
// the job's title and company, the shape both listing endpoints return.
type Detail struct {
	Application   `gorm:"embedded"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	UserPhone     string `json:"user_phone"`
	UserEmail     string `json:"user_email"`
	JobTitle      string `json:"job_title"`
	JobCompany    string `json:"job_company"`
}
