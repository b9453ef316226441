package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const uniqueViolation = "23505"

// Create inserts a new application. The (candidate_id, vacancy_id) unique
// constraint makes the insert the uniqueness check: two concurrent submits
// for the same pair cannot both succeed, the loser gets ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (candidate_id, vacancy_id, submitted_at, status, recruiter_note, attachment_ref, active, interview_at, interview_details, interview_notified, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		app.CandidateID,
		app.VacancyID,
		app.SubmittedAt,
		app.Status,
		app.RecruiterNote,
		app.AttachmentRef,
		app.Active,
		app.InterviewAt,
		app.InterviewDetails,
		app.InterviewNotified,
		app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves an application with candidate and vacancy names joined in.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.candidate_id, a.vacancy_id, a.submitted_at, a.status,
			a.recruiter_note, a.attachment_ref, a.active, a.interview_at,
			a.interview_details, a.interview_notified, a.updated_at,
			u.name AS candidate_name,
			v.title AS vacancy_title
		FROM applications a
		LEFT JOIN users u ON a.candidate_id = u.id
		LEFT JOIN vacancies v ON a.vacancy_id = v.id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.CandidateID, &app.VacancyID, &app.SubmittedAt, &app.Status,
		&app.RecruiterNote, &app.AttachmentRef, &app.Active, &app.InterviewAt,
		&app.InterviewDetails, &app.InterviewNotified, &app.UpdatedAt,
		&app.CandidateName, &app.VacancyTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

const applicationListQuery = `
	SELECT
		a.id, a.candidate_id, a.vacancy_id, a.submitted_at, a.status,
		a.recruiter_note, a.attachment_ref, a.active, a.interview_at,
		a.interview_details, a.interview_notified, a.updated_at,
		u.name AS candidate_name,
		v.title AS vacancy_title
	FROM applications a
	LEFT JOIN users u ON a.candidate_id = u.id
	LEFT JOIN vacancies v ON a.vacancy_id = v.id`

func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	query := applicationListQuery + ` WHERE a.candidate_id = $1 ORDER BY a.submitted_at DESC`
	return r.list(ctx, query, candidateID)
}

func (r *applicationRepo) GetByVacancyID(ctx context.Context, vacancyID int64) ([]domain.Application, error) {
	query := applicationListQuery + ` WHERE a.vacancy_id = $1 ORDER BY a.submitted_at DESC`
	return r.list(ctx, query, vacancyID)
}

// GetByEmployerID joins through vacancy ownership: every application on any
// vacancy the employer owns, newest first.
func (r *applicationRepo) GetByEmployerID(ctx context.Context, employerID int64) ([]domain.Application, error) {
	query := applicationListQuery + ` WHERE v.employer_id = $1 ORDER BY a.submitted_at DESC`
	return r.list(ctx, query, employerID)
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, vacancyID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND vacancy_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, candidateID, vacancyID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) CountByCandidateAndStatus(ctx context.Context, candidateID int64, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE candidate_id = $1 AND status = $2`
	var count int64
	err := r.db.QueryRow(ctx, query, candidateID, status).Scan(&count)
	return count, err
}

func (r *applicationRepo) CountUpcomingInterviews(ctx context.Context, candidateID int64, now time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE candidate_id = $1 AND interview_at IS NOT NULL AND interview_at > $2`
	var count int64
	err := r.db.QueryRow(ctx, query, candidateID, now).Scan(&count)
	return count, err
}

// Update persists the mutable workflow fields. submitted_at, candidate_id
// and vacancy_id never change after creation.
func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET
		status = $2,
		recruiter_note = $3,
		active = $4,
		interview_at = $5,
		interview_details = $6,
		interview_notified = $7,
		updated_at = $8
	WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		app.ID, app.Status, app.RecruiterNote, app.Active,
		app.InterviewAt, app.InterviewDetails, app.InterviewNotified, app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) MarkInterviewNotified(ctx context.Context, id int64) error {
	query := `UPDATE applications SET interview_notified = TRUE, updated_at = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetUnnotifiedInterviews is a read-only support query for an external
// reminder job: accepted applications with an interview booked whose
// notification flag is still false.
func (r *applicationRepo) GetUnnotifiedInterviews(ctx context.Context) ([]domain.Application, error) {
	query := applicationListQuery + ` WHERE a.interview_at IS NOT NULL AND a.interview_notified = FALSE ORDER BY a.interview_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepo) DeleteByVacancyID(ctx context.Context, vacancyID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM applications WHERE vacancy_id = $1`, vacancyID)
	return err
}

func (r *applicationRepo) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.CandidateID, &app.VacancyID, &app.SubmittedAt, &app.Status,
			&app.RecruiterNote, &app.AttachmentRef, &app.Active, &app.InterviewAt,
			&app.InterviewDetails, &app.InterviewNotified, &app.UpdatedAt,
			&app.CandidateName, &app.VacancyTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
