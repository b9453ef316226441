package apperror

import (
	"errors"
	"net/http"
)

// Kind identifies a domain failure condition independently of the HTTP
// status it maps to, so callers can branch without string matching.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindForbidden            Kind = "forbidden"
	KindDuplicateApplication Kind = "duplicate_application"
	KindVacancyClosed        Kind = "vacancy_closed"
	KindInvalidAttachment    Kind = "invalid_attachment"
	KindValidation           Kind = "validation_error"
	KindInvalidTransition    Kind = "invalid_transition"
	KindBadRequest           Kind = "bad_request"
	KindUnauthorized         Kind = "unauthorized"
	KindInternal             Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is lets errors.Is match two AppErrors by kind.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == kind
}

func BadRequest(message string) *AppError {
	return New(KindBadRequest, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func DuplicateApplication(message string) *AppError {
	return New(KindDuplicateApplication, http.StatusConflict, message, nil)
}

func VacancyClosed(message string) *AppError {
	return New(KindVacancyClosed, http.StatusConflict, message, nil)
}

func InvalidAttachment(message string) *AppError {
	return New(KindInvalidAttachment, http.StatusBadRequest, message, nil)
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func InvalidTransition(message string) *AppError {
	return New(KindInvalidTransition, http.StatusConflict, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}
