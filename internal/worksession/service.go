package worksession

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/worklink/worklink-backend/internal/job"
)

// RepositoryAPI is the persistence surface the work-session service needs.
// UpdateTransition must persist the row only if its version is unchanged
// since the read, returning ErrStaleVersion otherwise.
type RepositoryAPI interface {
	Create(s *WorkSession) error
	GetByID(id string) (*WorkSession, error)
	GetView(id string) (*View, error)
	HasOpenSession(userID, jobID string) (bool, error)
	UpdateTransition(s *WorkSession) error
	ListByUser(userID string, filter ListFilter) ([]*View, error)
	ListByEmployer(employerID string, filter ListFilter) ([]*View, error)
	UserSummary(userID string) (*Summary, error)
	EmployerSummary(employerID string) (*Summary, error)
}

// ApplicationChecker verifies the user was accepted for the job before a
// session can be opened.
type ApplicationChecker interface {
	HasAccepted(userID, jobID string) (bool, error)
}

// JobDirectory resolves the job a session is opened against.
type JobDirectory interface {
	GetByID(id string) (*job.Job, error)
}

type Service struct {
	repo         RepositoryAPI
	applications ApplicationChecker
	jobs         JobDirectory
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, applications ApplicationChecker, jobs JobDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		applications: applications,
		jobs:         jobs,
		logger:       logger,
	}
}

// Create opens a session for a job the user was accepted for. At most one
// session per (user, job) may be open, meaning not yet work-ended.
func (s *Service) Create(userID string, dto CreateSessionDTO) (*View, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	j, err := s.jobs.GetByID(dto.JobID)
	if err != nil {
		return nil, job.ErrJobNotFound
	}

	accepted, err := s.applications.HasAccepted(userID, j.ID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, ErrNotAccepted
	}

	open, err := s.repo.HasOpenSession(userID, j.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrOpenSession
	}

	now := time.Now().UTC()
	session := &WorkSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		JobID:        j.ID,
		EmployerID:   j.EmployerID,
		DailyPayment: dto.DailyPayment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(session); err != nil {
		s.logger.Error("failed to create work session", "error", err, "user_id", userID, "job_id", j.ID)
		return nil, err
	}

	s.logger.Info("work session created", "session_id", session.ID, "user_id", userID, "job_id", j.ID)
	return s.repo.GetView(session.ID)
}

// ApproveStart records the employer's decision on starting work. Only
// allowed before work has started; the employer may also revoke a previous
// approval by sending approved=false.
func (s *Service) ApproveStart(employerID, sessionID string, dto ApproveDTO) (*View, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}

	if session.EmployerID != employerID {
		return nil, ErrNotSessionOwner
	}

	if session.WorkStarted {
		return nil, ErrAlreadyStarted
	}

	session.StartApproved = dto.IsApproved()
	session.EmployerStartNotes = dto.EmployerNotes
	session.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTransition(session); err != nil {
		return nil, err
	}

	s.logger.Info("work session start decision recorded",
		"session_id", session.ID, "approved", session.StartApproved, "employer_id", employerID)
	return s.repo.GetView(session.ID)
}

// RequestStart begins work. Requires an approved, not yet started, not
// ended session owned by the calling user; stamps the start time.
func (s *Service) RequestStart(userID, sessionID string, dto NotesDTO) (*View, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}

	if session.UserID != userID {
		return nil, ErrNotSessionUser
	}

	if session.WorkStarted {
		return nil, ErrAlreadyStarted
	}
	if session.WorkEnded {
		return nil, ErrAlreadyEnded
	}
	if !session.StartApproved {
		return nil, ErrStartNotApproved
	}

	now := time.Now().UTC()
	session.WorkStarted = true
	session.StartTime = &now
	session.Notes = dto.Notes
	session.UpdatedAt = now

	if err := s.repo.UpdateTransition(session); err != nil {
		return nil, err
	}

	s.logger.Info("work session started", "session_id", session.ID, "user_id", userID)
	return s.repo.GetView(session.ID)
}

// RequestEnd finishes work. Stamps the end time, computes hours worked from
// the two instants, and appends the closing notes to the running notes.
func (s *Service) RequestEnd(userID, sessionID string, dto NotesDTO) (*View, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}

	if session.UserID != userID {
		return nil, ErrNotSessionUser
	}

	if !session.WorkStarted {
		return nil, ErrNotStarted
	}
	if session.WorkEnded {
		return nil, ErrAlreadyEnded
	}

	now := time.Now().UTC()
	session.WorkEnded = true
	session.EndTime = &now

	if session.StartTime != nil {
		hours := ComputeHours(*session.StartTime, now)
		session.HoursWorked = &hours
	}

	if dto.Notes != nil && *dto.Notes != "" {
		appended := "End Notes: " + *dto.Notes
		if session.Notes != nil && *session.Notes != "" {
			appended = *session.Notes + "\n" + appended
		}
		session.Notes = &appended
	}

	session.UpdatedAt = now

	if err := s.repo.UpdateTransition(session); err != nil {
		return nil, err
	}

	s.logger.Info("work session ended", "session_id", session.ID, "user_id", userID, "hours_worked", session.HoursWorked)
	return s.repo.GetView(session.ID)
}

// ApproveEnd records the employer's decision on the finished work. Only
// allowed once the user has ended the session.
func (s *Service) ApproveEnd(employerID, sessionID string, dto ApproveDTO) (*View, error) {
	session, err := s.repo.GetByID(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}

	if session.EmployerID != employerID {
		return nil, ErrNotSessionOwner
	}

	if !session.WorkEnded {
		return nil, ErrNotEnded
	}

	session.EndApproved = dto.IsApproved()
	session.EmployerEndNotes = dto.EmployerNotes
	session.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTransition(session); err != nil {
		return nil, err
	}

	s.logger.Info("work session end decision recorded",
		"session_id", session.ID, "approved", session.EndApproved, "employer_id", employerID)
	return s.repo.GetView(session.ID)
}

func (s *Service) MySessions(userID string, filter ListFilter) ([]*View, error) {
	return s.repo.ListByUser(userID, filter)
}

func (s *Service) EmployerSessions(employerID string, filter ListFilter) ([]*View, error) {
	return s.repo.ListByEmployer(employerID, filter)
}

func (s *Service) MySummary(userID string) (*Summary, error) {
	return s.repo.UserSummary(userID)
}

func (s *Service) EmployerSummary(employerID string) (*Summary, error) {
	return s.repo.EmployerSummary(employerID)
}
