package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/application"
)

// ApplicationRepository implements application.RepositoryAPI and the
// accepted-application check the work-session service depends on.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(a *application.Application) error {
	return r.db.Create(a).Error
}

func (r *ApplicationRepository) GetByID(id string) (*application.Application, error) {
	var a application.Application
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) Exists(userID, jobID string) (bool, error) {
	var count int64
	err := r.db.Model(&application.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

// HasAccepted reports whether the user holds an accepted application for the
// job. Work sessions can only be opened on top of one.
func (r *ApplicationRepository) HasAccepted(userID, jobID string) (bool, error) {
	var count int64
	err := r.db.Model(&application.Application{}).
		Where("user_id = ? AND job_id = ? AND status = ?", userID, jobID, application.StatusAccepted).
		Count(&count).Error
	return count > 0, err
}

const detailColumns = `applications.*,
	u.first_name AS user_first_name,
	u.last_name AS user_last_name,
	u.phone_number AS user_phone,
	u.email AS user_email,
	j.title AS job_title,
	e.company_name AS job_company`

func (r *ApplicationRepository) ListByUser(userID string, filter application.ListFilter) ([]*application.Detail, error) {
	q := r.db.Model(&application.Application{}).
		Select(detailColumns).
		Joins("JOIN users u ON u.id = applications.user_id").
		Joins("JOIN jobs j ON j.id = applications.job_id").
		Joins("JOIN employers e ON e.id = j.employer_id").
		Where("applications.user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("applications.status = ?", filter.Status)
	}

	var details []*application.Detail
	err := q.Order("applications.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&details).Error
	return details, err
}

func (r *ApplicationRepository) ListByJob(jobID string, filter application.ListFilter) ([]*application.Detail, error) {
	q := r.db.Model(&application.Application{}).
		Select(detailColumns).
		Joins("JOIN users u ON u.id = applications.user_id").
		Joins("JOIN jobs j ON j.id = applications.job_id").
		Joins("JOIN employers e ON e.id = j.employer_id").
		Where("applications.job_id = ?", jobID)

	if filter.Status != "" {
		q = q.Where("applications.status = ?", filter.Status)
	}

	var details []*application.Detail
	err := q.Order("applications.created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&details).Error
	return details, err
}

func (r *ApplicationRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&application.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ApplicationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&application.Application{}).Error
}
