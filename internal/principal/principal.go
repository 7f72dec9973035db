package principal

import (
	"errors"
	"time"
)

// Kind discriminates the three authenticated actor types. It is embedded in
// tokens and checked by every kind-scoped endpoint.
const (
	KindUser     = "user"
	KindEmployer = "employer"
	KindAdmin    = "admin"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;size:100;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;size:100;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"column:phone_number;size:20;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	DateOfBirth  time.Time `json:"date_of_birth" gorm:"column:date_of_birth;not null"`
	District     string    `json:"district" gorm:"size:50;index;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Employer struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	FirstName    string    `json:"first_name,omitempty" gorm:"column:first_name;size:100"`
	LastName     string    `json:"last_name,omitempty" gorm:"column:last_name;size:100"`
	CompanyName  string    `json:"company_name" gorm:"column:company_name;size:255;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"column:phone_number;size:20;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	District     string    `json:"district" gorm:"size:50;index;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Employer) TableName() string {
	return "employers"
}

type Admin struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;size:100;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

var ErrNotFound = errors.New("principal not found")

// Repository is the polymorphic lookup surface over the three account
// tables. Email uniqueness is enforced across users and employers together,
// so the InUse checks span both tables.
type Repository interface {
	GetUserByID(id string) (*User, error)
	GetEmployerByID(id string) (*Employer, error)
	GetAdminByID(id string) (*Admin, error)

	GetUserByEmail(email string) (*User, error)
	GetEmployerByEmail(email string) (*Employer, error)
	GetAdminByEmail(email string) (*Admin, error)

	EmailInUse(email string) (bool, error)
	PhoneInUse(phone string) (bool, error)

	CreateUser(u *User) error
	CreateEmployer(e *Employer) error
	UpdateUser(u *User) error
	UpdateEmployer(e *Employer) error

	Exists(kind, id string) (bool, error)
}
