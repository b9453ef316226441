package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
	"github.com/miguelmlop25/gestion-vacantes/pkg/logger"
)

type authUsecase struct {
	userRepo  domain.UserRepository
	notifier  domain.Notifier
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, notifier domain.Notifier, jwtSecret string, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		notifier:  notifier,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (uc *authUsecase) RegisterCandidate(ctx context.Context, email, name, password string, skills []string) (*domain.User, error) {
	user := &domain.User{
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Name:   strings.TrimSpace(name),
		Role:   domain.RoleCandidate,
		Active: true,
		Skills: skills,
	}
	return uc.register(ctx, user, password)
}

func (uc *authUsecase) RegisterEmployer(ctx context.Context, email, name, password, companyName string) (*domain.User, error) {
	company := strings.TrimSpace(companyName)
	if company == "" {
		return nil, apperror.Validation("Company name is required")
	}
	user := &domain.User{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Name:        strings.TrimSpace(name),
		Role:        domain.RoleEmployer,
		Active:      true,
		CompanyName: &company,
	}
	return uc.register(ctx, user, password)
}

func (uc *authUsecase) register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Email == "" {
		return nil, apperror.Validation("Email is required")
	}
	if user.Name == "" {
		return nil, apperror.Validation("Name is required")
	}
	if len(password) < 8 {
		return nil, apperror.Validation("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.PasswordHash = string(hash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.BadRequest("An account with this email already exists")
		}
		return nil, apperror.Internal(err)
	}

	// Welcome email is best-effort; registration already succeeded.
	go func(email, name, role string) {
		if err := uc.notifier.NotifyWelcome(context.Background(), email, name, role); err != nil {
			logger.Log.Warn("welcome notification failed", "email", email, "error", err)
		}
	}(user.Email, user.Name, user.Role)

	return user, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same answer whether the account exists or the password is wrong.
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}
	if !user.Active {
		return "", nil, apperror.Forbidden("This account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, user, nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
