package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// TerminalStatus reports whether status is one no transition may leave.
func TerminalStatus(status string) bool {
	return status == ApplicationStatusAccepted || status == ApplicationStatusRejected
}

// CanTransition reports whether the workflow allows moving between two
// statuses: pending → reviewed → accepted / rejected, with rejected also
// reachable straight from pending. Accepted and rejected are terminal.
func CanTransition(from, to string) bool {
	if TerminalStatus(from) {
		return false
	}
	switch to {
	case ApplicationStatusReviewed:
		return from == ApplicationStatusPending
	case ApplicationStatusAccepted, ApplicationStatusRejected:
		return from == ApplicationStatusPending || from == ApplicationStatusReviewed
	}
	return false
}

// Application is a candidate's request to be considered for one vacancy.
// At most one application exists per (candidate, vacancy) pair; the
// constraint lives in the database so concurrent submissions cannot race.
type Application struct {
	ID                int64      `json:"id"`
	CandidateID       int64      `json:"candidate_id"`
	VacancyID         int64      `json:"vacancy_id"`
	SubmittedAt       time.Time  `json:"submitted_at"` // Immutable after creation
	Status            string     `json:"status"`       // pending → reviewed → accepted / rejected
	RecruiterNote     *string    `json:"recruiter_note,omitempty"`
	AttachmentRef     string     `json:"attachment_ref"` // Required
	Active            bool       `json:"active"`
	InterviewAt       *time.Time `json:"interview_at,omitempty"`
	InterviewDetails  *string    `json:"interview_details,omitempty"`
	InterviewNotified bool       `json:"interview_notified"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Joined data for list responses
	CandidateName *string `json:"candidate_name,omitempty"`
	VacancyTitle  *string `json:"vacancy_title,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create inserts the application. Returns ErrDuplicate when the
	// (candidate, vacancy) unique constraint trips.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	GetByVacancyID(ctx context.Context, vacancyID int64) ([]Application, error)
	GetByEmployerID(ctx context.Context, employerID int64) ([]Application, error)
	Exists(ctx context.Context, candidateID, vacancyID int64) (bool, error)
	CountByCandidateAndStatus(ctx context.Context, candidateID int64, status string) (int64, error)
	CountUpcomingInterviews(ctx context.Context, candidateID int64, now time.Time) (int64, error)
	Update(ctx context.Context, app *Application) error
	MarkInterviewNotified(ctx context.Context, id int64) error
	GetUnnotifiedInterviews(ctx context.Context) ([]Application, error)
	DeleteByVacancyID(ctx context.Context, vacancyID int64) error
}

// ApplicationUsecase defines business logic for the application workflow
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID, vacancyID int64, filename string, file []byte) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]Application, error)
	CountPending(ctx context.Context, candidateID int64) (int64, error)
	CountUpcomingInterviews(ctx context.Context, candidateID int64) (int64, error)
	HasApplied(ctx context.Context, candidateID, vacancyID int64) (bool, error)

	// Employer operations
	ListByVacancy(ctx context.Context, employerID, vacancyID int64) ([]Application, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]Application, error)
	ScheduleInterview(ctx context.Context, employerID, applicationID int64, at time.Time, details string) (*Application, error)
	Reject(ctx context.Context, employerID, applicationID int64, reason string) (*Application, error)
	MarkReviewed(ctx context.Context, employerID, applicationID int64) (*Application, error)
	// ResolveAttachment returns a downloadable location (path or presigned
	// URL) for the application's CV, after the ownership check.
	ResolveAttachment(ctx context.Context, employerID, applicationID int64) (string, error)
}
