package admin

import (
	"log/slog"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
)

// Stats is the platform-wide counters panel.
type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalEmployers      int64 `json:"total_employers"`
	TotalJobs           int64 `json:"total_jobs"`
	ActiveJobs          int64 `json:"active_jobs"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
}

// RepositoryAPI is the persistence surface for the admin service. The
// cascade deletes each run in a single transaction and remove every row
// that references the deleted entity, work sessions included.
type RepositoryAPI interface {
	Stats() (*Stats, error)
	ListUsers(skip, limit int) ([]*principal.User, error)
	ListEmployers(skip, limit int) ([]*principal.Employer, error)
	ListJobs(status string, skip, limit int) ([]*job.Job, error)
	ListApplications(status string, skip, limit int) ([]*application.Application, error)
	DeleteUserCascade(userID string) error
	DeleteEmployerCascade(employerID string) error
	DeleteJobCascade(jobID string) error
	UpdateJobStatus(jobID, status string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Stats() (*Stats, error) {
	return s.repo.Stats()
}

func (s *Service) ListUsers(skip, limit int) ([]*principal.User, error) {
	return s.repo.ListUsers(skip, limit)
}

func (s *Service) ListEmployers(skip, limit int) ([]*principal.Employer, error) {
	return s.repo.ListEmployers(skip, limit)
}

func (s *Service) ListJobs(status string, skip, limit int) ([]*job.Job, error) {
	return s.repo.ListJobs(status, skip, limit)
}

func (s *Service) ListApplications(status string, skip, limit int) ([]*application.Application, error) {
	return s.repo.ListApplications(status, skip, limit)
}

func (s *Service) DeleteUser(userID string) error {
	if err := s.repo.DeleteUserCascade(userID); err != nil {
		return err
	}
	s.logger.Info("user deleted with cascade", "user_id", userID)
	return nil
}

func (s *Service) DeleteEmployer(employerID string) error {
	if err := s.repo.DeleteEmployerCascade(employerID); err != nil {
		return err
	}
	s.logger.Info("employer deleted with cascade", "employer_id", employerID)
	return nil
}

func (s *Service) DeleteJob(jobID string) error {
	if err := s.repo.DeleteJobCascade(jobID); err != nil {
		return err
	}
	s.logger.Info("job deleted with cascade", "job_id", jobID)
	return nil
}

func (s *Service) UpdateJobStatus(jobID, status string) error {
	if status != job.StatusActive && status != job.StatusClosed {
		return internal.NewValidationFieldError("status", "status must be one of: active, closed", internal.ErrCodeInvalidStatus)
	}

	if err := s.repo.UpdateJobStatus(jobID, status); err != nil {
		return err
	}

	s.logger.Info("job status updated by admin", "job_id", jobID, "status", status)
	return nil
}
