package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
)

type vacancyUsecase struct {
	vacancyRepo domain.VacancyRepository
	now         func() time.Time
}

func NewVacancyUsecase(vacancyRepo domain.VacancyRepository) domain.VacancyUsecase {
	return &vacancyUsecase{
		vacancyRepo: vacancyRepo,
		now:         time.Now,
	}
}

// Publish creates a vacancy owned by the employer. Required fields must be
// non-blank and the employment type must be one of the known values.
func (uc *vacancyUsecase) Publish(ctx context.Context, employerID int64, v *domain.Vacancy) error {
	if err := validateVacancyFields(v); err != nil {
		return err
	}

	now := uc.now()
	v.EmployerID = employerID
	v.Status = domain.VacancyStatusPublished
	v.PublishedAt = now
	v.UpdatedAt = now

	if err := uc.vacancyRepo.Create(ctx, v); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Update overwrites the editable fields of a vacancy the actor owns. The
// publication timestamp is never touched; the repository enforces that too.
func (uc *vacancyUsecase) Update(ctx context.Context, employerID int64, v *domain.Vacancy) error {
	existing, err := uc.vacancyRepo.GetByID(ctx, v.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Vacancy not found")
		}
		return apperror.Internal(err)
	}
	if existing.EmployerID != employerID {
		return apperror.Forbidden("You do not own this vacancy")
	}

	if err := validateVacancyFields(v); err != nil {
		return err
	}
	if v.Status != domain.VacancyStatusPublished && v.Status != domain.VacancyStatusClosed {
		return apperror.Validation("Status must be published or closed")
	}

	v.EmployerID = existing.EmployerID
	v.PublishedAt = existing.PublishedAt
	v.UpdatedAt = uc.now()

	if err := uc.vacancyRepo.Update(ctx, v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Vacancy not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Close marks the vacancy closed. Ownership is the caller's concern here;
// the handler checks it before invoking.
func (uc *vacancyUsecase) Close(ctx context.Context, id int64) error {
	if err := uc.vacancyRepo.UpdateStatus(ctx, id, domain.VacancyStatusClosed); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Vacancy not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Delete removes the vacancy and its applications as one atomic unit. Either
// every dependent record goes with it or nothing does.
func (uc *vacancyUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.vacancyRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Vacancy not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *vacancyUsecase) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	v, err := uc.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}
	return v, nil
}

func (uc *vacancyUsecase) ListByEmployer(ctx context.Context, employerID int64) ([]domain.Vacancy, error) {
	return uc.vacancyRepo.GetByEmployerID(ctx, employerID)
}

// Search normalizes blank filters to absent and delegates to the repository,
// which applies the open-vacancy predicate uniformly whether or not filters
// were supplied.
func (uc *vacancyUsecase) Search(ctx context.Context, f domain.VacancySearchFilter) ([]domain.Vacancy, error) {
	f.Location = strings.TrimSpace(f.Location)
	f.Keyword = strings.TrimSpace(f.Keyword)
	f.EmploymentType = strings.TrimSpace(f.EmploymentType)

	if f.EmploymentType != "" && !domain.ValidEmploymentType(f.EmploymentType) {
		return nil, apperror.Validation("Unknown employment type: " + f.EmploymentType)
	}

	return uc.vacancyRepo.Search(ctx, f, uc.now())
}

func validateVacancyFields(v *domain.Vacancy) error {
	if strings.TrimSpace(v.Title) == "" {
		return apperror.Validation("Title is required")
	}
	if strings.TrimSpace(v.Description) == "" {
		return apperror.Validation("Description is required")
	}
	if strings.TrimSpace(v.Location) == "" {
		return apperror.Validation("Location is required")
	}
	if !domain.ValidEmploymentType(v.EmploymentType) {
		return apperror.Validation("Employment type must be one of: full_time, part_time, internship, contract, freelance")
	}
	return nil
}
