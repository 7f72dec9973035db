package postgres

import (
	"errors"

	"github.com/worklink/worklink-backend/internal/principal"
	"gorm.io/gorm"
)

// PrincipalRepository implements principal.Repository over the users,
// employers and admins tables.
type PrincipalRepository struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) principal.Repository {
	return &PrincipalRepository{db: db}
}

func (r *PrincipalRepository) GetUserByID(id string) (*principal.User, error) {
	var u principal.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PrincipalRepository) GetEmployerByID(id string) (*principal.Employer, error) {
	var e principal.Employer
	if err := r.db.Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PrincipalRepository) GetAdminByID(id string) (*principal.Admin, error) {
	var a principal.Admin
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PrincipalRepository) GetUserByEmail(email string) (*principal.User, error) {
	var u principal.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PrincipalRepository) GetEmployerByEmail(email string) (*principal.Employer, error) {
	var e principal.Employer
	if err := r.db.Where("email = ?", email).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PrincipalRepository) GetAdminByEmail(email string) (*principal.Admin, error) {
	var a principal.Admin
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, principal.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EmailInUse checks users and employers; registration must reject an email
// that exists in either table.
func (r *PrincipalRepository) EmailInUse(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&principal.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&principal.Employer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PrincipalRepository) PhoneInUse(phone string) (bool, error) {
	var count int64
	if err := r.db.Model(&principal.User{}).Where("phone_number = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&principal.Employer{}).Where("phone_number = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PrincipalRepository) CreateUser(u *principal.User) error {
	return r.db.Create(u).Error
}

func (r *PrincipalRepository) CreateEmployer(e *principal.Employer) error {
	return r.db.Create(e).Error
}

func (r *PrincipalRepository) UpdateUser(u *principal.User) error {
	return r.db.Save(u).Error
}

func (r *PrincipalRepository) UpdateEmployer(e *principal.Employer) error {
	return r.db.Save(e).Error
}

func (r *PrincipalRepository) Exists(kind, id string) (bool, error) {
	var count int64
	var err error
	switch kind {
	case principal.KindUser:
		err = r.db.Model(&principal.User{}).Where("id = ?", id).Count(&count).Error
	case principal.KindEmployer:
		err = r.db.Model(&principal.Employer{}).Where("id = ?", id).Count(&count).Error
	case principal.KindAdmin:
		err = r.db.Model(&principal.Admin{}).Where("id = ?", id).Count(&count).Error
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
