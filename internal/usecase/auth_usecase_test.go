package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/internal/usecase"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
)

const testJWTSecret = "unit-test-secret"

type authFixture struct {
	userRepo *MockUserRepo
	notifier *MockNotifier
	uc       domain.AuthUsecase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo: new(MockUserRepo),
		notifier: new(MockNotifier),
	}
	f.uc = usecase.NewAuthUsecase(f.userRepo, f.notifier, testJWTSecret, time.Hour)
	f.notifier.On("NotifyWelcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func TestRegisterCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the email and hashes the password", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := f.uc.RegisterCandidate(ctx, "  Ana@Example.COM ", "Ana", "supersecret", []string{"go", "sql"})

		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		assert.Equal(t, []string{"go", "sql"}, user.Skills)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.uc.RegisterCandidate(ctx, "ana@example.com", "Ana", "short", nil)

		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a duplicate email to a client error", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := f.uc.RegisterCandidate(ctx, "ana@example.com", "Ana", "supersecret", nil)

		assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	})
}

func TestRegisterEmployer(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a company name", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.uc.RegisterEmployer(ctx, "hr@acme.com", "Acme HR", "supersecret", "  ")

		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("stores the trimmed company name", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, err := f.uc.RegisterEmployer(ctx, "hr@acme.com", "Acme HR", "supersecret", " Acme Corp ")

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, user.Role)
		assert.Equal(t, "Acme Corp", *user.CompanyName)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	storedUser := func() *domain.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
		return &domain.User{
			ID:           42,
			Email:        "ana@example.com",
			Name:         "Ana",
			Role:         domain.RoleCandidate,
			Active:       true,
			PasswordHash: string(hash),
		}
	}

	t.Run("returns a signed token carrying the user id and role", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(storedUser(), nil)

		token, user, err := f.uc.Login(ctx, "Ana@Example.com", "supersecret")

		assert.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(42), claims["sub"])
		assert.Equal(t, domain.RoleCandidate, claims["role"])
	})

	t.Run("gives the same answer for unknown email and wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)
		f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(storedUser(), nil)

		_, _, errUnknown := f.uc.Login(ctx, "ghost@example.com", "whatever")
		_, _, errWrong := f.uc.Login(ctx, "ana@example.com", "not-the-password")

		assert.True(t, apperror.IsKind(errUnknown, apperror.KindUnauthorized))
		assert.True(t, apperror.IsKind(errWrong, apperror.KindUnauthorized))
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("refuses a deactivated account", func(t *testing.T) {
		f := newAuthFixture()
		u := storedUser()
		u.Active = false
		f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

		_, _, err := f.uc.Login(ctx, "ana@example.com", "supersecret")

		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})
}
