package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/internal/usecase"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
)

var pdfBytes = []byte("%PDF-1.4 minimal test document")

type applicationFixture struct {
	appRepo     *MockApplicationRepo
	vacancyRepo *MockVacancyRepo
	userRepo    *MockUserRepo
	documents   *MockDocumentStore
	notifier    *MockNotifier
	uc          domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		appRepo:     new(MockApplicationRepo),
		vacancyRepo: new(MockVacancyRepo),
		userRepo:    new(MockUserRepo),
		documents:   new(MockDocumentStore),
		notifier:    new(MockNotifier),
	}
	f.uc = usecase.NewApplicationUsecase(f.appRepo, f.vacancyRepo, f.userRepo, f.documents, f.notifier)

	// Async notification lookups may or may not run before the test ends.
	f.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 1, Email: "x@example.com", Name: "X"}, nil).Maybe()
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifier.On("NotifyInterviewScheduled", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.appRepo.On("MarkInterviewNotified", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func openVacancy(employerID int64) *domain.Vacancy {
	return &domain.Vacancy{
		ID:          10,
		EmployerID:  employerID,
		Title:       "Senior Engineer",
		Status:      domain.VacancyStatusPublished,
		PublishedAt: time.Now().Add(-24 * time.Hour),
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending application on an open vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.documents.On("Store", mock.Anything, "cv.pdf", pdfBytes).Return("ref-123.pdf", nil)
		f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := f.uc.Apply(ctx, 1, 10, "cv.pdf", pdfBytes)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "ref-123.pdf", app.AttachmentRef)
		assert.True(t, app.Active)
		assert.False(t, app.SubmittedAt.IsZero())
	})

	t.Run("fails with InvalidAttachment for empty file", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.uc.Apply(ctx, 1, 10, "cv.pdf", nil)

		assert.True(t, apperror.IsKind(err, apperror.KindInvalidAttachment))
		f.appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("fails with InvalidAttachment for wrong format", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.uc.Apply(ctx, 1, 10, "cv.exe", pdfBytes)

		assert.True(t, apperror.IsKind(err, apperror.KindInvalidAttachment))
	})

	t.Run("fails with VacancyClosed on closed status regardless of closing date", func(t *testing.T) {
		f := newApplicationFixture()
		v := openVacancy(2)
		v.Status = domain.VacancyStatusClosed
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

		_, err := f.uc.Apply(ctx, 1, 10, "cv.pdf", pdfBytes)

		assert.True(t, apperror.IsKind(err, apperror.KindVacancyClosed))
	})

	t.Run("fails with VacancyClosed on published vacancy past its closing date", func(t *testing.T) {
		f := newApplicationFixture()
		v := openVacancy(2)
		expired := time.Now().Add(-time.Hour)
		v.ClosesAt = &expired
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

		_, err := f.uc.Apply(ctx, 1, 10, "cv.pdf", pdfBytes)

		assert.True(t, apperror.IsKind(err, apperror.KindVacancyClosed))
	})

	t.Run("fails with DuplicateApplication when the unique constraint trips", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.documents.On("Store", mock.Anything, "cv.pdf", pdfBytes).Return("ref-123.pdf", nil)
		f.appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
		f.documents.On("Delete", mock.Anything, "ref-123.pdf").Return(nil)

		_, err := f.uc.Apply(ctx, 1, 10, "cv.pdf", pdfBytes)

		assert.True(t, apperror.IsKind(err, apperror.KindDuplicateApplication))
		// The stored attachment must not be left behind on a lost race
		f.documents.AssertCalled(t, "Delete", mock.Anything, "ref-123.pdf")
	})

	t.Run("fails with NotFound for a missing vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancyRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, 1, 99, "cv.pdf", pdfBytes)

		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestScheduleInterview(t *testing.T) {
	ctx := context.Background()
	at := time.Now().Add(48 * time.Hour)

	pendingApp := func() *domain.Application {
		return &domain.Application{
			ID:          5,
			CandidateID: 1,
			VacancyID:   10,
			Status:      domain.ApplicationStatusPending,
			SubmittedAt: time.Now().Add(-time.Hour),
		}
	}

	t.Run("accepts a pending application and populates interview fields", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.appRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := f.uc.ScheduleInterview(ctx, 2, 5, at, "Video call")

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		assert.Equal(t, at, *app.InterviewAt)
		assert.Equal(t, "Video call", *app.InterviewDetails)
		assert.False(t, app.InterviewNotified)
	})

	t.Run("accepts a reviewed application too", func(t *testing.T) {
		f := newApplicationFixture()
		app := pendingApp()
		app.Status = domain.ApplicationStatusReviewed
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.appRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.uc.ScheduleInterview(ctx, 2, 5, at, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, got.Status)
	})

	t.Run("fails with Forbidden for an employer who does not own the vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.ScheduleInterview(ctx, 99, 5, at, "")

		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("fails with NotFound for a missing application", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.ScheduleInterview(ctx, 2, 404, at, "")

		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("fails with InvalidTransition on a rejected application", func(t *testing.T) {
		f := newApplicationFixture()
		app := pendingApp()
		app.Status = domain.ApplicationStatusRejected
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.ScheduleInterview(ctx, 2, 5, at, "")

		assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	appWithStatus := func(status string) *domain.Application {
		return &domain.Application{
			ID:          5,
			CandidateID: 1,
			VacancyID:   10,
			Status:      status,
			SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	t.Run("rejects a pending application and stores the reason", func(t *testing.T) {
		f := newApplicationFixture()
		app := appWithStatus(domain.ApplicationStatusPending)
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.appRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.uc.Reject(ctx, 2, 5, "Not enough experience")

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, got.Status)
		assert.Equal(t, "Not enough experience", *got.RecruiterNote)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), got.SubmittedAt)
	})

	t.Run("rejecting an already rejected application is a no-op", func(t *testing.T) {
		f := newApplicationFixture()
		app := appWithStatus(domain.ApplicationStatusRejected)
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		got, err := f.uc.Reject(ctx, 2, 5, "again")

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, got.Status)
		f.appRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejecting an accepted application fails with InvalidTransition", func(t *testing.T) {
		f := newApplicationFixture()
		app := appWithStatus(domain.ApplicationStatusAccepted)
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.Reject(ctx, 2, 5, "")

		assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	})
}

func TestMarkReviewed(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a pending application to reviewed without touching other fields", func(t *testing.T) {
		f := newApplicationFixture()
		app := &domain.Application{
			ID:            5,
			CandidateID:   1,
			VacancyID:     10,
			Status:        domain.ApplicationStatusPending,
			AttachmentRef: "ref.pdf",
		}
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.appRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.uc.MarkReviewed(ctx, 2, 5)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusReviewed, got.Status)
		assert.Equal(t, "ref.pdf", got.AttachmentRef)
		assert.Nil(t, got.InterviewAt)
	})

	t.Run("fails with InvalidTransition when already reviewed", func(t *testing.T) {
		f := newApplicationFixture()
		app := &domain.Application{ID: 5, VacancyID: 10, Status: domain.ApplicationStatusReviewed}
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.MarkReviewed(ctx, 2, 5)

		assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	})
}

func TestResolveAttachment(t *testing.T) {
	ctx := context.Background()

	storedApp := func() *domain.Application {
		return &domain.Application{
			ID:            5,
			CandidateID:   1,
			VacancyID:     10,
			Status:        domain.ApplicationStatusPending,
			AttachmentRef: "ref-123.pdf",
		}
	}

	t.Run("returns the download location for the owning employer", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(storedApp(), nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)
		f.documents.On("Resolve", mock.Anything, "ref-123.pdf").Return("https://bucket/cv/ref-123.pdf", nil)

		url, err := f.uc.ResolveAttachment(ctx, 2, 5)

		assert.NoError(t, err)
		assert.Equal(t, "https://bucket/cv/ref-123.pdf", url)
	})

	t.Run("fails with Forbidden for an employer who does not own the vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(5)).Return(storedApp(), nil)
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.ResolveAttachment(ctx, 99, 5)

		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
		f.documents.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("fails with NotFound for a missing application", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.ResolveAttachment(ctx, 2, 404)

		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestApplicationQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("ListByVacancy enforces vacancy ownership", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancyRepo.On("GetByID", mock.Anything, int64(10)).Return(openVacancy(2), nil)

		_, err := f.uc.ListByVacancy(ctx, 99, 10)

		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
		f.appRepo.AssertNotCalled(t, "GetByVacancyID", mock.Anything, mock.Anything)
	})

	t.Run("CountPending counts only pending applications", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("CountByCandidateAndStatus", mock.Anything, int64(1), domain.ApplicationStatusPending).Return(int64(3), nil)

		count, err := f.uc.CountPending(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("HasApplied delegates to the existence check", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("Exists", mock.Anything, int64(1), int64(10)).Return(true, nil)

		applied, err := f.uc.HasApplied(ctx, 1, 10)

		assert.NoError(t, err)
		assert.True(t, applied)
	})
}
