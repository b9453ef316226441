package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := VacancyClosed("closed")

	assert.True(t, IsKind(err, KindVacancyClosed))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindVacancyClosed))
	assert.False(t, IsKind(nil, KindVacancyClosed))
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", DuplicateApplication("dup"))

	assert.True(t, IsKind(err, KindDuplicateApplication))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	assert.True(t, errors.Is(NotFound("vacancy"), NotFound("user")))
	assert.False(t, errors.Is(NotFound("vacancy"), Forbidden("no")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.True(t, errors.Is(err, cause))
}

func TestConflictStatuses(t *testing.T) {
	assert.Equal(t, http.StatusConflict, DuplicateApplication("").Code)
	assert.Equal(t, http.StatusConflict, VacancyClosed("").Code)
	assert.Equal(t, http.StatusConflict, InvalidTransition("").Code)
}
