// Package lending derives the human-readable status of a borrow transaction
// from its borrow, due and return dates.
package lending

import (
	"fmt"
	"time"
)

// LoanPeriod is the default borrowing window applied when no due date is
// supplied.
const LoanPeriod = 7 * 24 * time.Hour

const (
	StatusPending        = "pending"
	StatusReturnedOnTime = "returned on time"
)

const dayMillis = 24 * 60 * 60 * 1000

// DueDate returns the effective due date: the explicit one when set,
// otherwise the borrow date plus LoanPeriod.
func DueDate(borrow time.Time, due *time.Time) time.Time {
	if due != nil && !due.IsZero() {
		return *due
	}
	return borrow.Add(LoanPeriod)
}

// DeriveStatus classifies a transaction. A transaction without a return date
// is pending. A returned transaction is compared against its effective due
// date at calendar-day granularity:
//
//	returned before the due day  -> "returned early (N days)"
//	returned on the due day      -> "returned on time"
//	returned after the due day   -> "overdue (N days)"
//
// N floors the raw millisecond delta divided by a day, so time-of-day
// components in the stored dates shift N exactly as the stored values do.
func DeriveStatus(borrow time.Time, due *time.Time, returned *time.Time) string {
	if returned == nil {
		return StatusPending
	}

	effectiveDue := DueDate(borrow, due)
	dueDay := toDay(effectiveDue)
	returnDay := toDay(*returned)

	switch {
	case returnDay.Before(dueDay):
		return StatusReturnedEarly(wholeDays(*returned, effectiveDue))
	case returnDay.After(dueDay):
		return StatusOverdue(wholeDays(effectiveDue, *returned))
	default:
		return StatusReturnedOnTime
	}
}

// StatusReturnedEarly formats the early-return status for n whole days.
func StatusReturnedEarly(n int64) string {
	return fmt.Sprintf("returned early (%d days)", n)
}

// StatusOverdue formats the overdue status for n whole days.
func StatusOverdue(n int64) string {
	return fmt.Sprintf("overdue (%d days)", n)
}

// IsOverdue reports whether now falls on a later calendar day than due.
// An unreturned transaction stays pending until its due day has passed.
func IsOverdue(due, now time.Time) bool {
	return toDay(now).After(toDay(due))
}

// OverdueBy returns the floored whole days by which now exceeds due.
func OverdueBy(due, now time.Time) int64 {
	return wholeDays(due, now)
}

// wholeDays floors the millisecond delta between from and to. from must not
// be after to for a meaningful result; callers order the arguments.
func wholeDays(from, to time.Time) int64 {
	return (to.UnixMilli() - from.UnixMilli()) / dayMillis
}

func toDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
