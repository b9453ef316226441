package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// User is an account on the platform, either a candidate or an employer.
// The core trusts the authenticated id and role handed to it by the
// session layer; this type exists as the producer of those ids.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // candidate / employer
	Active       bool      `json:"active"`
	Skills       []string  `json:"skills,omitempty"`       // Candidates only
	CompanyName  *string   `json:"company_name,omitempty"` // Employers only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository defines data access methods for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// AuthUsecase defines registration and login logic
type AuthUsecase interface {
	RegisterCandidate(ctx context.Context, email, name, password string, skills []string) (*User, error)
	RegisterEmployer(ctx context.Context, email, name, password, companyName string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
}
