package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/admin"
	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
	"github.com/worklink/worklink-backend/internal/worksession"
)

// AdminRepository implements admin.RepositoryAPI. The cascading deletes run
// inside one transaction so a failed step leaves nothing half-removed.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Stats() (*admin.Stats, error) {
	var s admin.Stats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&s.TotalUsers, r.db.Model(&principal.User{})},
		{&s.TotalEmployers, r.db.Model(&principal.Employer{})},
		{&s.TotalJobs, r.db.Model(&job.Job{})},
		{&s.ActiveJobs, r.db.Model(&job.Job{}).Where("status = ?", job.StatusActive)},
		{&s.TotalApplications, r.db.Model(&application.Application{})},
		{&s.PendingApplications, r.db.Model(&application.Application{}).Where("status = ?", application.StatusPending)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return &s, nil
}

func (r *AdminRepository) ListUsers(skip, limit int) ([]*principal.User, error) {
	var users []*principal.User
	err := r.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

func (r *AdminRepository) ListEmployers(skip, limit int) ([]*principal.Employer, error) {
	var employers []*principal.Employer
	err := r.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&employers).Error
	return employers, err
}

func (r *AdminRepository) ListJobs(status string, skip, limit int) ([]*job.Job, error) {
	q := r.db.Model(&job.Job{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []*job.Job
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&jobs).Error
	return jobs, err
}

func (r *AdminRepository) ListApplications(status string, skip, limit int) ([]*application.Application, error) {
	q := r.db.Model(&application.Application{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []*application.Application
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&apps).Error
	return apps, err
}

// DeleteUserCascade removes the user's work sessions and applications before
// the user row itself.
func (r *AdminRepository) DeleteUserCascade(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u principal.User
		if err := tx.Where("id = ?", userID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return principal.ErrNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&worksession.WorkSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&application.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

// DeleteEmployerCascade removes, per job, its applications and work
// sessions, then the jobs, then any sessions still referencing the employer
// directly, then the employer row.
func (r *AdminRepository) DeleteEmployerCascade(employerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var e principal.Employer
		if err := tx.Where("id = ?", employerID).First(&e).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return principal.ErrNotFound
			}
			return err
		}

		var jobIDs []string
		if err := tx.Model(&job.Job{}).Where("employer_id = ?", employerID).Pluck("id", &jobIDs).Error; err != nil {
			return err
		}

		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&application.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&worksession.WorkSession{}).Error; err != nil {
				return err
			}
			if err := tx.Where("employer_id = ?", employerID).Delete(&job.Job{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("employer_id = ?", employerID).Delete(&worksession.WorkSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&e).Error
	})
}

// DeleteJobCascade removes the job's applications and work sessions before
// the job row itself.
func (r *AdminRepository) DeleteJobCascade(jobID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var j job.Job
		if err := tx.Where("id = ?", jobID).First(&j).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return job.ErrJobNotFound
			}
			return err
		}

		if err := tx.Where("job_id = ?", jobID).Delete(&application.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&worksession.WorkSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&j).Error
	})
}

func (r *AdminRepository) UpdateJobStatus(jobID, status string) error {
	res := r.db.Model(&job.Job{}).Where("id = ?", jobID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return job.ErrJobNotFound
	}
	return nil
}
