package job

import (
	"time"

	"github.com/worklink/worklink-backend/internal/core/common/validation"
)

type CreateJobDTO struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	District            string     `json:"district"`
	Salary              int64      `json:"salary"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
}

func (d CreateJobDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MinLen(5).MaxLen(255)
	v.Field("description", d.Description).Required().MinLen(20)
	v.Field("category", d.Category).Required()
	v.Field("district", d.District).Required()
	v.Field("salary", d.Salary).Positive()
	return v.Validate()
}

// UpdateJobDTO is a partial update; nil fields are untouched.
type UpdateJobDTO struct {
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
	Category            *string    `json:"category,omitempty"`
	District            *string    `json:"district,omitempty"`
	Salary              *int64     `json:"salary,omitempty"`
	Status              *string    `json:"status,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
}

func (d UpdateJobDTO) Validate() error {
	v := validation.NewValidator()
	if d.Title != nil {
		v.Field("title", *d.Title).MinLen(5).MaxLen(255)
	}
	if d.Description != nil {
		v.Field("description", *d.Description).MinLen(20)
	}
	if d.Salary != nil {
		v.Field("salary", *d.Salary).Positive()
	}
	if d.Status != nil {
		v.Field("status", *d.Status).OneOf(StatusActive, StatusClosed)
	}
	return v.Validate()
}

func (d UpdateJobDTO) ApplyTo(j *Job) {
	if d.Title != nil {
		j.Title = *d.Title
	}
	if d.Description != nil {
		j.Description = *d.Description
	}
	if d.Category != nil {
		j.Category = *d.Category
	}
	if d.District != nil {
		j.District = *d.District
	}
	if d.Salary != nil {
		j.Salary = *d.Salary
	}
	if d.Status != nil {
		j.Status = *d.Status
	}
	if d.ApplicationDeadline != nil {
		j.ApplicationDeadline = d.ApplicationDeadline
	}
}

// ListFilter narrows the public catalog listing.
type ListFilter struct {
	Category  string
	District  string
	MinSalary int64
	Status    string
	Skip      int
	Limit     int
}

// SearchFilter drives the case-insensitive substring search over active jobs.
type SearchFilter struct {
	Query    string
	Category string
	District string
	Skip     int
	Limit    int
}
