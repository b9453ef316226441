package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.ApplicationStatusPending, domain.ApplicationStatusReviewed, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusAccepted, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusReviewed, domain.ApplicationStatusAccepted, true},
		{domain.ApplicationStatusReviewed, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusReviewed, domain.ApplicationStatusReviewed, false},
		{domain.ApplicationStatusReviewed, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected, false},
		{domain.ApplicationStatusAccepted, domain.ApplicationStatusReviewed, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusAccepted, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusReviewed, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatus(t *testing.T) {
	assert.True(t, domain.TerminalStatus(domain.ApplicationStatusAccepted))
	assert.True(t, domain.TerminalStatus(domain.ApplicationStatusRejected))
	assert.False(t, domain.TerminalStatus(domain.ApplicationStatusPending))
	assert.False(t, domain.TerminalStatus(domain.ApplicationStatusReviewed))
}

func TestVacancyIsOpen(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("published without closing date is open", func(t *testing.T) {
		v := domain.Vacancy{Status: domain.VacancyStatusPublished}
		assert.True(t, v.IsOpen(now))
	})

	t.Run("published with future closing date is open", func(t *testing.T) {
		v := domain.Vacancy{Status: domain.VacancyStatusPublished, ClosesAt: &future}
		assert.True(t, v.IsOpen(now))
	})

	t.Run("published with past closing date is not open", func(t *testing.T) {
		v := domain.Vacancy{Status: domain.VacancyStatusPublished, ClosesAt: &past}
		assert.False(t, v.IsOpen(now))
	})

	t.Run("closing date exactly now is not open", func(t *testing.T) {
		v := domain.Vacancy{Status: domain.VacancyStatusPublished, ClosesAt: &now}
		assert.False(t, v.IsOpen(now))
	})

	t.Run("closed status is never open", func(t *testing.T) {
		v := domain.Vacancy{Status: domain.VacancyStatusClosed, ClosesAt: &future}
		assert.False(t, v.IsOpen(now))
	})
}
