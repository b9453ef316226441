package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
	"github.com/miguelmlop25/gestion-vacantes/pkg/logger"
	"github.com/miguelmlop25/gestion-vacantes/pkg/storage"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	vacancyRepo     domain.VacancyRepository
	userRepo        domain.UserRepository
	documents       domain.DocumentStore
	notifier        domain.Notifier
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	vacancyRepo domain.VacancyRepository,
	userRepo domain.UserRepository,
	documents domain.DocumentStore,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		vacancyRepo:     vacancyRepo,
		userRepo:        userRepo,
		documents:       documents,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Apply submits a candidate's application for an open vacancy. The attachment
// is validated and stored first; the insert itself enforces the
// one-application-per-candidate-per-vacancy rule through the database
// constraint, so there is no check-then-act window.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID, vacancyID int64, filename string, file []byte) (*domain.Application, error) {
	if res := storage.ValidateAttachment(filename, file); !res.Valid {
		return nil, apperror.InvalidAttachment(res.Error)
	}

	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}
	if !vacancy.IsOpen(uc.now()) {
		return nil, apperror.VacancyClosed("This vacancy is no longer accepting applications")
	}

	ref, err := uc.documents.Store(ctx, filename, file)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now()
	app := &domain.Application{
		CandidateID:   candidateID,
		VacancyID:     vacancyID,
		SubmittedAt:   now,
		Status:        domain.ApplicationStatusPending,
		AttachmentRef: ref,
		Active:        true,
		UpdatedAt:     now,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// The attachment is orphaned on a lost race; clean it up best-effort.
		if delErr := uc.documents.Delete(ctx, ref); delErr != nil {
			logger.Log.Warn("failed to remove orphaned attachment", "ref", ref, "error", delErr)
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.DuplicateApplication("You have already applied to this vacancy")
		}
		return nil, apperror.Internal(err)
	}

	uc.notifyNewApplication(app, vacancy)

	return app, nil
}

// notifyNewApplication tells the vacancy's employer about the new submission.
// Fire-and-forget: delivery problems are logged and never reach the caller.
func (uc *applicationUsecase) notifyNewApplication(app *domain.Application, vacancy *domain.Vacancy) {
	go func() {
		ctx := context.Background()
		employer, err := uc.userRepo.GetByID(ctx, vacancy.EmployerID)
		if err != nil {
			logger.Log.Warn("new-application notification skipped", "vacancy_id", vacancy.ID, "error", err)
			return
		}
		candidateName := ""
		if candidate, err := uc.userRepo.GetByID(ctx, app.CandidateID); err == nil {
			candidateName = candidate.Name
		}
		notice := domain.NewApplicationNotice{
			EmployerEmail: employer.Email,
			EmployerName:  employer.Name,
			CandidateName: candidateName,
			VacancyTitle:  vacancy.Title,
		}
		if err := uc.notifier.NotifyNewApplication(ctx, notice); err != nil {
			logger.Log.Warn("new-application notification failed", "application_id", app.ID, "error", err)
		}
	}()
}

// ScheduleInterview books an interview and moves the application to accepted.
// The notification flag is reset before the send and marked true after the
// attempt; it records bookkeeping, not delivery.
func (uc *applicationUsecase) ScheduleInterview(ctx context.Context, employerID, applicationID int64, at time.Time, details string) (*domain.Application, error) {
	app, err := uc.loadOwnedApplication(ctx, employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(app.Status, domain.ApplicationStatusAccepted) {
		return nil, apperror.InvalidTransition("Cannot schedule an interview for a " + app.Status + " application")
	}

	app.InterviewAt = &at
	app.InterviewDetails = &details
	app.Status = domain.ApplicationStatusAccepted
	app.InterviewNotified = false
	app.UpdatedAt = uc.now()

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifyInterview(app)

	return app, nil
}

func (uc *applicationUsecase) notifyInterview(app *domain.Application) {
	at := *app.InterviewAt
	details := ""
	if app.InterviewDetails != nil {
		details = *app.InterviewDetails
	}
	go func() {
		ctx := context.Background()
		candidate, err := uc.userRepo.GetByID(ctx, app.CandidateID)
		if err != nil {
			logger.Log.Warn("interview notification skipped", "application_id", app.ID, "error", err)
			return
		}
		title := ""
		if vacancy, err := uc.vacancyRepo.GetByID(ctx, app.VacancyID); err == nil {
			title = vacancy.Title
		}
		notice := domain.InterviewNotice{
			CandidateEmail: candidate.Email,
			CandidateName:  candidate.Name,
			VacancyTitle:   title,
			At:             at,
			Details:        details,
		}
		if err := uc.notifier.NotifyInterviewScheduled(ctx, notice); err != nil {
			logger.Log.Warn("interview notification failed", "application_id", app.ID, "error", err)
		}
		// Flag flips after the attempt regardless of outcome; it only says
		// the send was tried, not that it arrived.
		if err := uc.applicationRepo.MarkInterviewNotified(ctx, app.ID); err != nil {
			logger.Log.Warn("could not mark interview notified", "application_id", app.ID, "error", err)
		}
	}()
}

// Reject moves the application to rejected and stores the optional reason as
// the recruiter note. Rejecting an already rejected application is a no-op;
// rejecting an accepted one is refused, terminal states stay terminal.
func (uc *applicationUsecase) Reject(ctx context.Context, employerID, applicationID int64, reason string) (*domain.Application, error) {
	app, err := uc.loadOwnedApplication(ctx, employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status == domain.ApplicationStatusRejected {
		return app, nil
	}
	if !domain.CanTransition(app.Status, domain.ApplicationStatusRejected) {
		return nil, apperror.InvalidTransition("Cannot reject an accepted application")
	}

	app.Status = domain.ApplicationStatusRejected
	if reason != "" {
		app.RecruiterNote = &reason
	}
	app.UpdatedAt = uc.now()

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// MarkReviewed advances a pending application to reviewed. No other field changes.
func (uc *applicationUsecase) MarkReviewed(ctx context.Context, employerID, applicationID int64) (*domain.Application, error) {
	app, err := uc.loadOwnedApplication(ctx, employerID, applicationID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(app.Status, domain.ApplicationStatusReviewed) {
		return nil, apperror.InvalidTransition("Only pending applications can be marked as reviewed")
	}

	app.Status = domain.ApplicationStatusReviewed
	app.UpdatedAt = uc.now()

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// ResolveAttachment hands the employer a downloadable location for the
// candidate's CV: a filesystem path on local storage, a presigned URL on S3.
func (uc *applicationUsecase) ResolveAttachment(ctx context.Context, employerID, applicationID int64) (string, error) {
	app, err := uc.loadOwnedApplication(ctx, employerID, applicationID)
	if err != nil {
		return "", err
	}

	location, err := uc.documents.Resolve(ctx, app.AttachmentRef)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return location, nil
}

func (uc *applicationUsecase) ListByCandidate(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	return uc.applicationRepo.GetByCandidateID(ctx, candidateID)
}

// ListByVacancy returns a vacancy's applications after checking the caller
// owns the vacancy.
func (uc *applicationUsecase) ListByVacancy(ctx context.Context, employerID, vacancyID int64) ([]domain.Application, error) {
	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}
	if vacancy.EmployerID != employerID {
		return nil, apperror.Forbidden("You do not own this vacancy")
	}
	return uc.applicationRepo.GetByVacancyID(ctx, vacancyID)
}

func (uc *applicationUsecase) ListByEmployer(ctx context.Context, employerID int64) ([]domain.Application, error) {
	return uc.applicationRepo.GetByEmployerID(ctx, employerID)
}

func (uc *applicationUsecase) CountPending(ctx context.Context, candidateID int64) (int64, error) {
	return uc.applicationRepo.CountByCandidateAndStatus(ctx, candidateID, domain.ApplicationStatusPending)
}

func (uc *applicationUsecase) CountUpcomingInterviews(ctx context.Context, candidateID int64) (int64, error) {
	return uc.applicationRepo.CountUpcomingInterviews(ctx, candidateID, uc.now())
}

func (uc *applicationUsecase) HasApplied(ctx context.Context, candidateID, vacancyID int64) (bool, error) {
	return uc.applicationRepo.Exists(ctx, candidateID, vacancyID)
}

// loadOwnedApplication fetches the application and enforces that the acting
// employer owns its vacancy. Every mutating workflow operation goes through
// this single ownership predicate.
func (uc *applicationUsecase) loadOwnedApplication(ctx context.Context, employerID, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	vacancy, err := uc.vacancyRepo.GetByID(ctx, app.VacancyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if vacancy.EmployerID != employerID {
		return nil, apperror.Forbidden("You do not own the vacancy for this application")
	}
	return app, nil
}
