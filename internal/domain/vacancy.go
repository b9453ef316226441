package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

// Vacancy status constants
const (
	VacancyStatusPublished = "published"
	VacancyStatusClosed    = "closed"
)

// Employment type constants
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentInternship = "internship"
	EmploymentContract   = "contract"
	EmploymentFreelance  = "freelance"
)

// ValidEmploymentType reports whether t is one of the supported employment types.
func ValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentInternship, EmploymentContract, EmploymentFreelance:
		return true
	}
	return false
}

// Vacancy is a job posting owned by a single employer.
type Vacancy struct {
	ID             int64      `json:"id"`
	EmployerID     int64      `json:"employer_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Requirements   *string    `json:"requirements,omitempty"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	Salary         *float64   `json:"salary,omitempty"`
	PublishedAt    time.Time  `json:"published_at"` // Immutable after creation
	ClosesAt       *time.Time `json:"closes_at,omitempty"`
	Status         string     `json:"status"` // published / closed
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined data for list responses
	CompanyName *string `json:"company_name,omitempty"`
}

// IsOpen reports whether the vacancy accepts applications at the given
// instant: it must be published and its optional closing date must not have
// passed. Every listing and search path uses this same predicate.
func (v *Vacancy) IsOpen(now time.Time) bool {
	if v.Status != VacancyStatusPublished {
		return false
	}
	if v.ClosesAt != nil && !now.Before(*v.ClosesAt) {
		return false
	}
	return true
}

// VacancySearchFilter holds the optional search predicates. Blank strings
// mean "not supplied"; all supplied filters are ANDed together.
type VacancySearchFilter struct {
	Location       string // case-insensitive substring
	EmploymentType string // exact match
	Keyword        string // case-insensitive substring on title or description
}

// VacancyRepository defines data access methods for vacancies
type VacancyRepository interface {
	Create(ctx context.Context, v *Vacancy) error
	GetByID(ctx context.Context, id int64) (*Vacancy, error)
	GetByEmployerID(ctx context.Context, employerID int64) ([]Vacancy, error)
	Search(ctx context.Context, f VacancySearchFilter, now time.Time) ([]Vacancy, error)
	Update(ctx context.Context, v *Vacancy) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// DeleteCascade removes the vacancy and every application referencing it
	// in a single transaction. Returns ErrNotFound if the vacancy is absent.
	DeleteCascade(ctx context.Context, id int64) error
}

// VacancyUsecase defines business logic for vacancy lifecycle and search
type VacancyUsecase interface {
	Publish(ctx context.Context, employerID int64, v *Vacancy) error
	Update(ctx context.Context, employerID int64, v *Vacancy) error
	Close(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Vacancy, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]Vacancy, error)
	Search(ctx context.Context, f VacancySearchFilter) ([]Vacancy, error)
}
