package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
)

type vacancyRepo struct {
	db *pgxpool.Pool
}

func NewVacancyRepository(db *pgxpool.Pool) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

const vacancyColumns = `id, employer_id, title, description, requirements, location, employment_type, salary, published_at, closes_at, status, updated_at`

func scanVacancy(row pgx.Row, v *domain.Vacancy) error {
	return row.Scan(
		&v.ID, &v.EmployerID, &v.Title, &v.Description, &v.Requirements, &v.Location,
		&v.EmploymentType, &v.Salary, &v.PublishedAt, &v.ClosesAt, &v.Status, &v.UpdatedAt,
	)
}

func (r *vacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	query := `
		INSERT INTO vacancies (employer_id, title, description, requirements, location, employment_type, salary, published_at, closes_at, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	return r.db.QueryRow(ctx, query,
		v.EmployerID, v.Title, v.Description, v.Requirements, v.Location,
		v.EmploymentType, v.Salary, v.PublishedAt, v.ClosesAt, v.Status, v.UpdatedAt,
	).Scan(&v.ID)
}

func (r *vacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE id = $1`

	var v domain.Vacancy
	if err := scanVacancy(r.db.QueryRow(ctx, query, id), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *vacancyRepo) GetByEmployerID(ctx context.Context, employerID int64) ([]domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE employer_id = $1 ORDER BY published_at DESC`

	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVacancies(rows)
}

// Search applies the open-vacancy predicate plus any supplied filters.
// Location and keyword are case-insensitive substring matches, employment
// type is exact. Results come back newest-first.
func (r *vacancyRepo) Search(ctx context.Context, f domain.VacancySearchFilter, now time.Time) ([]domain.Vacancy, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + vacancyColumns + ` FROM vacancies WHERE status = $1 AND (closes_at IS NULL OR closes_at > $2)`)
	args := []any{domain.VacancyStatusPublished, now}

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		sb.WriteString(` AND location ILIKE $` + strconv.Itoa(len(args)))
	}
	if f.EmploymentType != "" {
		args = append(args, f.EmploymentType)
		sb.WriteString(` AND employment_type = $` + strconv.Itoa(len(args)))
	}
	if f.Keyword != "" {
		args = append(args, "%"+f.Keyword+"%")
		n := strconv.Itoa(len(args))
		sb.WriteString(` AND (title ILIKE $` + n + ` OR description ILIKE $` + n + `)`)
	}
	sb.WriteString(` ORDER BY published_at DESC`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVacancies(rows)
}

func (r *vacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	// published_at is deliberately absent: the publication timestamp is
	// immutable for the life of the record.
	query := `UPDATE vacancies SET
		title = $2,
		description = $3,
		requirements = $4,
		location = $5,
		employment_type = $6,
		salary = $7,
		closes_at = $8,
		status = $9,
		updated_at = $10
	WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		v.ID, v.Title, v.Description, v.Requirements, v.Location,
		v.EmploymentType, v.Salary, v.ClosesAt, v.Status, v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vacancyRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE vacancies SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the vacancy's applications and then the vacancy in
// one transaction, so a failure partway leaves both record sets intact.
func (r *vacancyRepo) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE vacancy_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func collectVacancies(rows pgx.Rows) ([]domain.Vacancy, error) {
	var vacancies []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		if err := scanVacancy(rows, &v); err != nil {
			return nil, err
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}
