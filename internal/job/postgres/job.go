package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
)

// JobRepository implements job.RepositoryAPI over the jobs table.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(j *job.Job) error {
	return r.db.Create(j).Error
}

func (r *JobRepository) GetByID(id string) (*job.Job, error) {
	var j job.Job
	if err := r.db.Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) List(filter job.ListFilter) ([]*job.Job, error) {
	q := r.db.Model(&job.Job{}).Where("status = ?", filter.Status)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.District != "" {
		q = q.Where("district = ?", filter.District)
	}
	if filter.MinSalary > 0 {
		q = q.Where("salary >= ?", filter.MinSalary)
	}

	var jobs []*job.Job
	err := q.Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&jobs).Error
	return jobs, err
}

// Search matches a case-insensitive substring of the title or description.
// LOWER + LIKE behaves the same on postgres and sqlite, which keeps the
// handler integration tests honest.
func (r *JobRepository) Search(filter job.SearchFilter) ([]*job.Job, error) {
	pattern := "%" + filter.Query + "%"
	q := r.db.Model(&job.Job{}).
		Where("status = ?", job.StatusActive).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.District != "" {
		q = q.Where("district = ?", filter.District)
	}

	var jobs []*job.Job
	err := q.Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) ListByEmployer(employerID, status string, skip, limit int) ([]*job.Job, error) {
	q := r.db.Model(&job.Job{}).Where("employer_id = ?", employerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []*job.Job
	err := q.Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Update(j *job.Job) error {
	return r.db.Save(j).Error
}

func (r *JobRepository) EmployerName(employerID string) (string, error) {
	var e principal.Employer
	if err := r.db.Select("company_name").Where("id = ?", employerID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", principal.ErrNotFound
		}
		return "", err
	}
	return e.CompanyName, nil
}
