package domain

import (
	"context"
	"time"
)

// InterviewNotice carries the data needed to tell a candidate an interview
// was scheduled for their application.
type InterviewNotice struct {
	CandidateEmail string
	CandidateName  string
	VacancyTitle   string
	At             time.Time
	Details        string
}

// NewApplicationNotice carries the data needed to tell an employer a new
// application arrived on one of their vacancies.
type NewApplicationNotice struct {
	EmployerEmail string
	EmployerName  string
	CandidateName string
	VacancyTitle  string
}

// Notifier delivers outbound events. Methods are synchronous and return the
// delivery error; callers invoke them from goroutines, log failures and never
// let a delivery problem fail the workflow step that triggered it.
type Notifier interface {
	NotifyWelcome(ctx context.Context, email, name, role string) error
	NotifyInterviewScheduled(ctx context.Context, n InterviewNotice) error
	NotifyNewApplication(ctx context.Context, n NewApplicationNotice) error
}
