package lending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestDueDate_Explicit(t *testing.T) {
	due := date("2024-01-10")
	assert.Equal(t, due, DueDate(date("2024-01-01"), &due))
}

func TestDueDate_DefaultsToLoanPeriod(t *testing.T) {
	assert.Equal(t, date("2024-01-08"), DueDate(date("2024-01-01"), nil))
}

func TestDueDate_ZeroDueFallsBack(t *testing.T) {
	var zero time.Time
	assert.Equal(t, date("2024-01-08"), DueDate(date("2024-01-01"), &zero))
}

func TestDeriveStatus_PendingWithoutReturn(t *testing.T) {
	assert.Equal(t, StatusPending, DeriveStatus(date("2024-01-01"), datePtr("2024-01-08"), nil))
}

func TestDeriveStatus_ReturnedEarly(t *testing.T) {
	status := DeriveStatus(date("2024-01-01"), datePtr("2024-01-08"), datePtr("2024-01-05"))
	assert.Equal(t, "returned early (3 days)", status)
}

func TestDeriveStatus_ReturnedOnTime(t *testing.T) {
	status := DeriveStatus(date("2024-01-01"), datePtr("2024-01-08"), datePtr("2024-01-08"))
	assert.Equal(t, "returned on time", status)
}

func TestDeriveStatus_Overdue(t *testing.T) {
	status := DeriveStatus(date("2024-01-01"), datePtr("2024-01-08"), datePtr("2024-01-10"))
	assert.Equal(t, "overdue (2 days)", status)
}

func TestDeriveStatus_ImplicitDueDate(t *testing.T) {
	// No explicit due date: due falls on borrow + 7 days (2024-01-08).
	status := DeriveStatus(date("2024-01-01"), nil, datePtr("2024-01-06"))
	assert.Equal(t, "returned early (2 days)", status)
}

func TestDeriveStatus_SingleDayOverdue(t *testing.T) {
	status := DeriveStatus(date("2024-01-01"), datePtr("2024-01-08"), datePtr("2024-01-09"))
	assert.Equal(t, "overdue (1 days)", status)
}

func TestDeriveStatus_TimeOfDayFloorsWholeDays(t *testing.T) {
	// Returned on the previous calendar day but less than 24h before the
	// due timestamp: classified early, with the floored delta yielding 0.
	due := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC)
	status := DeriveStatus(date("2024-01-01"), &due, &ret)
	assert.Equal(t, "returned early (0 days)", status)
}

func TestDeriveStatus_OnTimeIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 1, 8, 23, 30, 0, 0, time.UTC)
	status := DeriveStatus(date("2024-01-01"), &due, &ret)
	assert.Equal(t, StatusReturnedOnTime, status)
}
