package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/worksession"
)

// WorkSessionRepository implements worksession.RepositoryAPI over the
// work_sessions table.
type WorkSessionRepository struct {
	db *gorm.DB
}

func NewWorkSessionRepository(db *gorm.DB) *WorkSessionRepository {
	return &WorkSessionRepository{db: db}
}

func (r *WorkSessionRepository) Create(s *worksession.WorkSession) error {
	return r.db.Create(s).Error
}

func (r *WorkSessionRepository) GetByID(id string) (*worksession.WorkSession, error) {
	var s worksession.WorkSession
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, worksession.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

const viewColumns = `work_sessions.*,
	u.first_name || ' ' || u.last_name AS user_name,
	j.title AS job_title,
	e.company_name AS employer_name`

func (r *WorkSessionRepository) GetView(id string) (*worksession.View, error) {
	var v worksession.View
	err := r.db.Model(&worksession.WorkSession{}).
		Select(viewColumns).
		Joins("JOIN users u ON u.id = work_sessions.user_id").
		Joins("JOIN jobs j ON j.id = work_sessions.job_id").
		Joins("JOIN employers e ON e.id = work_sessions.employer_id").
		Where("work_sessions.id = ?", id).
		Scan(&v).Error
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		return nil, worksession.ErrNotFound
	}
	return &v, nil
}

// HasOpenSession reports whether a not-yet-ended session exists for the
// (user, job) pair.
func (r *WorkSessionRepository) HasOpenSession(userID, jobID string) (bool, error) {
	var count int64
	err := r.db.Model(&worksession.WorkSession{}).
		Where("user_id = ? AND job_id = ? AND work_ended = ?", userID, jobID, false).
		Count(&count).Error
	return count > 0, err
}

// UpdateTransition persists a state transition with an optimistic version
// check. The update only lands when the stored version still matches the
// one the session was read at; zero rows affected means somebody else got
// there first.
func (r *WorkSessionRepository) UpdateTransition(s *worksession.WorkSession) error {
	readVersion := s.Version
	s.Version = readVersion + 1

	res := r.db.Model(&worksession.WorkSession{}).
		Where("id = ? AND version = ?", s.ID, readVersion).
		Updates(map[string]interface{}{
			"start_time":           s.StartTime,
			"end_time":             s.EndTime,
			"hours_worked":         s.HoursWorked,
			"start_approved":       s.StartApproved,
			"end_approved":         s.EndApproved,
			"work_started":         s.WorkStarted,
			"work_ended":           s.WorkEnded,
			"notes":                s.Notes,
			"employer_start_notes": s.EmployerStartNotes,
			"employer_end_notes":   s.EmployerEndNotes,
			"version":              s.Version,
			"updated_at":           s.UpdatedAt,
		})
	if res.Error != nil {
		s.Version = readVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.Version = readVersion
		return worksession.ErrStaleVersion
	}
	return nil
}

func (r *WorkSessionRepository) ListByUser(userID string, filter worksession.ListFilter) ([]*worksession.View, error) {
	q := r.db.Model(&worksession.WorkSession{}).
		Select(viewColumns).
		Joins("JOIN users u ON u.id = work_sessions.user_id").
		Joins("JOIN jobs j ON j.id = work_sessions.job_id").
		Joins("JOIN employers e ON e.id = work_sessions.employer_id").
		Where("work_sessions.user_id = ?", userID)

	q = applyStatusFilter(q, filter.Status)

	var views []*worksession.View
	err := q.Order("work_sessions.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&views).Error
	return views, err
}

func (r *WorkSessionRepository) ListByEmployer(employerID string, filter worksession.ListFilter) ([]*worksession.View, error) {
	q := r.db.Model(&worksession.WorkSession{}).
		Select(viewColumns).
		Joins("JOIN users u ON u.id = work_sessions.user_id").
		Joins("JOIN jobs j ON j.id = work_sessions.job_id").
		Joins("JOIN employers e ON e.id = work_sessions.employer_id").
		Where("work_sessions.employer_id = ?", employerID)

	q = applyStatusFilter(q, filter.Status)

	var views []*worksession.View
	err := q.Order("work_sessions.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&views).Error
	return views, err
}

// applyStatusFilter translates a derived status into the flag combination
// that defines it. Unknown values filter nothing, matching a missing
// parameter.
func applyStatusFilter(q *gorm.DB, status string) *gorm.DB {
	switch status {
	case worksession.StatusPendingStart:
		return q.Where("work_sessions.start_approved = ? AND work_sessions.work_started = ?", false, false)
	case worksession.StatusPendingEnd:
		return q.Where("work_sessions.work_ended = ? AND work_sessions.end_approved = ?", true, false)
	case worksession.StatusActive:
		return q.Where("work_sessions.work_started = ? AND work_sessions.work_ended = ?", true, false)
	case worksession.StatusCompleted:
		return q.Where("work_sessions.end_approved = ?", true)
	}
	return q
}

const summaryQuery = `
SELECT
	COUNT(*) AS total_sessions,
	COALESCE(SUM(CASE WHEN end_approved THEN 1 ELSE 0 END), 0) AS approved_sessions,
	COALESCE(SUM(CASE WHEN NOT start_approved AND NOT work_started THEN 1 ELSE 0 END), 0) AS pending_start_approval,
	COALESCE(SUM(CASE WHEN work_ended AND NOT end_approved THEN 1 ELSE 0 END), 0) AS pending_end_approval,
	COALESCE(SUM(CASE WHEN end_approved THEN daily_payment ELSE 0 END), 0) AS total_earnings,
	COALESCE(SUM(CASE WHEN end_approved THEN hours_worked ELSE 0 END), 0) AS total_hours
FROM work_sessions
WHERE `

func (r *WorkSessionRepository) UserSummary(userID string) (*worksession.Summary, error) {
	var s worksession.Summary
	err := r.db.Raw(summaryQuery+"user_id = ?", userID).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *WorkSessionRepository) EmployerSummary(employerID string) (*worksession.Summary, error) {
	var s worksession.Summary
	err := r.db.Raw(summaryQuery+"employer_id = ?", employerID).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
