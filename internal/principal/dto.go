package principal

import (
	"time"

	"github.com/worklink/worklink-backend/internal/core/common/textutil"
)

// UpdateUserDTO carries a partial profile update; nil fields are untouched.
type UpdateUserDTO struct {
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	District    *string    `json:"district,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

func (dto UpdateUserDTO) ApplyTo(u *User) {
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.PhoneNumber != nil {
		u.PhoneNumber = textutil.FormatPhoneNumber(*dto.PhoneNumber)
	}
	if dto.District != nil {
		u.District = *dto.District
	}
	if dto.DateOfBirth != nil {
		u.DateOfBirth = *dto.DateOfBirth
	}
}

type UpdateEmployerDTO struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	District    *string `json:"district,omitempty"`
}

func (dto UpdateEmployerDTO) ApplyTo(e *Employer) {
	if dto.FirstName != nil {
		e.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		e.LastName = *dto.LastName
	}
	if dto.CompanyName != nil {
		e.CompanyName = *dto.CompanyName
	}
	if dto.PhoneNumber != nil {
		e.PhoneNumber = textutil.FormatPhoneNumber(*dto.PhoneNumber)
	}
	if dto.District != nil {
		e.District = *dto.District
	}
}
