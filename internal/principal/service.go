package principal

import (
	"log/slog"
)

// Service serves the profile endpoints for users and employers.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetUser(id string) (*User, error) {
	u, err := s.repo.GetUserByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) UpdateUser(id string, dto UpdateUserDTO) (*User, error) {
	u, err := s.repo.GetUserByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	dto.ApplyTo(u)

	if err := s.repo.UpdateUser(u); err != nil {
		s.logger.Error("failed to update user profile", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user profile updated", "user_id", id)
	return u, nil
}

func (s *Service) GetEmployer(id string) (*Employer, error) {
	e, err := s.repo.GetEmployerByID(id)
	if err != nil {
		s.logger.Error("failed to get employer", "error", err, "employer_id", id)
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) UpdateEmployer(id string, dto UpdateEmployerDTO) (*Employer, error) {
	e, err := s.repo.GetEmployerByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	dto.ApplyTo(e)

	if err := s.repo.UpdateEmployer(e); err != nil {
		s.logger.Error("failed to update employer profile", "error", err, "employer_id", id)
		return nil, err
	}

	s.logger.Info("employer profile updated", "employer_id", id)
	return e, nil
}
