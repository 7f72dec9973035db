package job

import (
	"log/slog"
)

// RepositoryAPI is the persistence surface the catalog service needs.
type RepositoryAPI interface {
	Create(j *Job) error
	GetByID(id string) (*Job, error)
	List(filter ListFilter) ([]*Job, error)
	Search(filter SearchFilter) ([]*Job, error)
	ListByEmployer(employerID, status string, skip, limit int) ([]*Job, error)
	Update(j *Job) error
	EmployerName(employerID string) (string, error)
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

func (s *Service) Create(employerID string, dto CreateJobDTO) (*Job, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	j := NewJob(employerID, dto)
	if err := s.repo.Create(j); err != nil {
		s.logger.Error("failed to create job", "error", err, "employer_id", employerID)
		return nil, err
	}

	s.logger.Info("job created", "job_id", j.ID, "slug", j.Slug, "employer_id", employerID)
	return j, nil
}

func (s *Service) List(filter ListFilter) ([]*Job, error) {
	if filter.Status == "" {
		filter.Status = StatusActive
	}
	return s.repo.List(filter)
}

func (s *Service) Search(filter SearchFilter) ([]*Job, error) {
	return s.repo.Search(filter)
}

// GetDetail returns a posting joined with the employer's company name.
func (s *Service) GetDetail(id string) (*Detail, error) {
	j, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	name, err := s.repo.EmployerName(j.EmployerID)
	if err != nil {
		s.logger.Error("failed to resolve employer name", "error", err, "job_id", id, "employer_id", j.EmployerID)
		return nil, err
	}

	return &Detail{Job: *j, EmployerName: name}, nil
}

func (s *Service) MyJobs(employerID, status string, skip, limit int) ([]*Job, error) {
	return s.repo.ListByEmployer(employerID, status, skip, limit)
}

func (s *Service) Update(jobID, employerID string, dto UpdateJobDTO) (*Job, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	j, err := s.repo.GetByID(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	if j.EmployerID != employerID {
		return nil, ErrNotJobOwner
	}

	dto.ApplyTo(j)

	if err := s.repo.Update(j); err != nil {
		s.logger.Error("failed to update job", "error", err, "job_id", jobID)
		return nil, err
	}

	s.logger.Info("job updated", "job_id", jobID, "employer_id", employerID)
	return j, nil
}

// Close flips the posting to closed. Closing an already closed job is a
// no-op, the row stays around.
func (s *Service) Close(jobID, employerID string) error {
	j, err := s.repo.GetByID(jobID)
	if err != nil {
		return ErrJobNotFound
	}

	if j.EmployerID != employerID {
		return ErrNotJobOwner
	}

	if j.Status == StatusClosed {
		return nil
	}

	j.Status = StatusClosed
	if err := s.repo.Update(j); err != nil {
		s.logger.Error("failed to close job", "error", err, "job_id", jobID)
		return err
	}

	s.logger.Info("job closed", "job_id", jobID, "employer_id", employerID)
	return nil
}
