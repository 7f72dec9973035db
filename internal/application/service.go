package application

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/worklink/worklink-backend/internal/job"
)

// RepositoryAPI is the persistence surface the application service needs.
type RepositoryAPI interface {
	Create(a *Application) error
	GetByID(id string) (*Application, error)
	Exists(userID, jobID string) (bool, error)
	ListByUser(userID string, filter ListFilter) ([]*Detail, error)
	ListByJob(jobID string, filter ListFilter) ([]*Detail, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}

// JobDirectory resolves jobs for deadline and ownership checks.
type JobDirectory interface {
	GetByID(id string) (*job.Job, error)
}

type Service struct {
	repo   RepositoryAPI
	jobs   JobDirectory
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, jobs JobDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		jobs:   jobs,
		logger: logger,
	}
}

// Apply creates a pending application. The job must exist, its deadline must
// not have passed, and the user must not have applied before; nothing is
// written when any check fails.
func (s *Service) Apply(userID string, dto CreateApplicationDTO) (*Application, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	j, err := s.jobs.GetByID(dto.JobID)
	if err != nil {
		return nil, job.ErrJobNotFound
	}

	if j.DeadlinePassed(time.Now()) {
		return nil, ErrDeadlinePassed
	}

	exists, err := s.repo.Exists(userID, j.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	a := &Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     j.ID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create application", "error", err, "user_id", userID, "job_id", j.ID)
		return nil, err
	}

	s.logger.Info("application created", "application_id", a.ID, "user_id", userID, "job_id", j.ID)
	return a, nil
}

func (s *Service) MyApplications(userID string, filter ListFilter) ([]*Detail, error) {
	return s.repo.ListByUser(userID, filter)
}

// JobApplications lists applications for a job the employer owns.
func (s *Service) JobApplications(employerID, jobID string, filter ListFilter) ([]*Detail, error) {
	j, err := s.jobs.GetByID(jobID)
	if err != nil {
		return nil, job.ErrJobNotFound
	}

	if j.EmployerID != employerID {
		return nil, job.ErrNotJobOwner
	}

	return s.repo.ListByJob(jobID, filter)
}

// UpdateStatus moves an application to another status in the closed set.
// Only the employer owning the job may transition.
func (s *Service) UpdateStatus(employerID, applicationID string, dto UpdateStatusDTO) (*Application, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(applicationID)
	if err != nil {
		return nil, ErrNotFound
	}

	j, err := s.jobs.GetByID(a.JobID)
	if err != nil {
		return nil, job.ErrJobNotFound
	}

	if j.EmployerID != employerID {
		return nil, job.ErrNotJobOwner
	}

	if err := s.repo.UpdateStatus(a.ID, dto.Status); err != nil {
		s.logger.Error("failed to update application status", "error", err, "application_id", a.ID)
		return nil, err
	}

	a.Status = dto.Status
	s.logger.Info("application status updated", "application_id", a.ID, "status", a.Status, "employer_id", employerID)
	return a, nil
}

// Withdraw deletes the applicant's own application while it is still pending
// or reviewing.
func (s *Service) Withdraw(userID, applicationID string) error {
	a, err := s.repo.GetByID(applicationID)
	if err != nil {
		return ErrNotFound
	}

	if a.UserID != userID {
		return ErrNotApplicant
	}

	if !a.Withdrawable() {
		return ErrCannotWithdraw
	}

	if err := s.repo.Delete(a.ID); err != nil {
		s.logger.Error("failed to withdraw application", "error", err, "application_id", a.ID)
		return err
	}

	s.logger.Info("application withdrawn", "application_id", a.ID, "user_id", userID)
	return nil
}
