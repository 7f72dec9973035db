package worksession

import (
	"errors"
	"math"
	"time"
)

// Derived statuses. A session's status is never stored; it is computed from
// the four flags, and the filter queries use the same flag combinations.
const (
	StatusPendingStart = "pending_start"
	StatusPendingEnd   = "pending_end"
	StatusActive       = "active"
	StatusCompleted    = "completed"
)

var (
	ErrNotFound         = errors.New("work session not found")
	ErrNotSessionUser   = errors.New("work session belongs to another user")
	ErrNotSessionOwner  = errors.New("work session belongs to another employer")
	ErrNotAccepted      = errors.New("no accepted application for this job")
	ErrOpenSession      = errors.New("an open work session already exists for this job")
	ErrStartNotApproved = errors.New("work start has not been approved")
	ErrAlreadyStarted   = errors.New("work already started")
	ErrNotStarted       = errors.New("work not started yet")
	ErrAlreadyEnded     = errors.New("work session already ended")
	ErrNotEnded         = errors.New("work session not ended yet")
	ErrStaleVersion     = errors.New("work session was modified concurrently")
)

// WorkSession tracks one engagement between a user and a job through the
// mutual-approval lifecycle: employer approves the start, user starts work,
// user ends work, employer approves the end. Version guards every transition;
// an update only lands if the row has not moved since it was read.
type WorkSession struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:50"`
	UserID             string     `json:"user_id" gorm:"column:user_id;size:50;index;not null"`
	JobID              string     `json:"job_id" gorm:"column:job_id;size:50;index;not null"`
	EmployerID         string     `json:"employer_id" gorm:"column:employer_id;size:50;index;not null"`
	StartTime          *time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime            *time.Time `json:"end_time" gorm:"column:end_time"`
	DailyPayment       int64      `json:"daily_payment" gorm:"column:daily_payment;not null"`
	HoursWorked        *float64   `json:"hours_worked" gorm:"column:hours_worked"`
	StartApproved      bool       `json:"start_approved" gorm:"column:start_approved;index"`
	EndApproved        bool       `json:"end_approved" gorm:"column:end_approved;index"`
	WorkStarted        bool       `json:"work_started" gorm:"column:work_started;index"`
	WorkEnded          bool       `json:"work_ended" gorm:"column:work_ended;index"`
	Notes              *string    `json:"notes" gorm:"column:notes;type:text"`
	EmployerStartNotes *string    `json:"employer_start_notes" gorm:"column:employer_start_notes;type:text"`
	EmployerEndNotes   *string    `json:"employer_end_notes" gorm:"column:employer_end_notes;type:text"`
	Version            int64      `json:"-" gorm:"column:version;not null;default:0"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at;index"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}

// DerivedStatus collapses the flags into one of the four reportable states.
// Completed wins over everything, then the two pending states, then active.
// A session that is start-approved but not yet started has no status of its
// own and reports empty.
func (s *WorkSession) DerivedStatus() string {
	switch {
	case s.EndApproved:
		return StatusCompleted
	case s.WorkEnded:
		return StatusPendingEnd
	case s.WorkStarted:
		return StatusActive
	case !s.StartApproved:
		return StatusPendingStart
	}
	return ""
}

// ComputeHours is the elapsed time between the two instants in hours,
// rounded to two decimals. Both sides are normalized to UTC first so naive
// stored timestamps compare correctly.
func ComputeHours(start, end time.Time) float64 {
	d := end.UTC().Sub(start.UTC())
	return math.Round(d.Hours()*100) / 100
}

// View is a session enriched with the display names both listing endpoints
// attach to every row.
type View struct {
	WorkSession  `gorm:"embedded"`
	UserName     string `json:"user_name"`
	JobTitle     string `json:"job_title"`
	EmployerName string `json:"employer_name"`
}

// Summary aggregates a principal's sessions. Earnings and hours only count
// sessions whose end was approved.
type Summary struct {
	TotalSessions        int64   `json:"total_sessions"`
	ApprovedSessions     int64   `json:"approved_sessions"`
	PendingStartApproval int64   `json:"pending_start_approval"`
	PendingEndApproval   int64   `json:"pending_end_approval"`
	TotalEarnings        int64   `json:"total_earnings"`
	TotalHours           float64 `json:"total_hours"`
}
