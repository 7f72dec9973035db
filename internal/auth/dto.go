package auth

import (
	"time"

	"github.com/worklink/worklink-backend/internal/core/common/validation"
)

type RegisterUserDTO struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DateOfBirth time.Time `json:"date_of_birth"`
	District    string    `json:"district"`
}

func (d RegisterUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("first_name", d.FirstName).Required().MinLen(2).MaxLen(100)
	v.Field("last_name", d.LastName).Required().MinLen(2).MaxLen(100)
	v.Field("phone_number", d.PhoneNumber).Required().MinLen(10).MaxLen(20)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLen(8)
	v.Field("date_of_birth", d.DateOfBirth).Required()
	v.Field("district", d.District).Required().MinLen(2)
	return v.Validate()
}

type RegisterEmployerDTO struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	District    string `json:"district"`
}

func (d RegisterEmployerDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("company_name", d.CompanyName).Required().MinLen(2).MaxLen(255)
	v.Field("phone_number", d.PhoneNumber).Required().MinLen(10).MaxLen(20)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLen(8)
	v.Field("district", d.District).Required().MinLen(2)
	return v.Validate()
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}
