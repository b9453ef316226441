package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type vacancyPayload struct {
	EmploymentType string     `validate:"required,employment_type"`
	ClosesAt       *time.Time `validate:"omitempty,future_date"`
}

type interviewPayload struct {
	At time.Time `validate:"required,future_date"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestEmploymentTypeTag(t *testing.T) {
	v := newValidator(t)

	for _, typ := range []string{"full_time", "part_time", "internship", "contract", "freelance"} {
		assert.NoError(t, v.Struct(vacancyPayload{EmploymentType: typ}), typ)
	}

	err := v.Struct(vacancyPayload{EmploymentType: "gig"})
	assert.Error(t, err)
}

func TestFutureDateTag(t *testing.T) {
	v := newValidator(t)

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	t.Run("nil closing date passes with omitempty", func(t *testing.T) {
		assert.NoError(t, v.Struct(vacancyPayload{EmploymentType: "contract"}))
	})

	t.Run("future closing date passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(vacancyPayload{EmploymentType: "contract", ClosesAt: &future}))
	})

	t.Run("past closing date fails", func(t *testing.T) {
		assert.Error(t, v.Struct(vacancyPayload{EmploymentType: "contract", ClosesAt: &past}))
	})

	t.Run("past interview time fails", func(t *testing.T) {
		assert.Error(t, v.Struct(interviewPayload{At: past}))
	})

	t.Run("future interview time passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(interviewPayload{At: future}))
	})
}
