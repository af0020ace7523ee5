// Package loans implements the book-issue workflow: proposing a due date,
// validating the one a librarian submits, and flipping a copy to on-loan.
package loans

import (
	"errors"
	"time"
)

const (
	// DefaultIssuePeriodDays is how far ahead the proposed due date lies.
	DefaultIssuePeriodDays = 21

	// MaxIssueWindowDays is the furthest acceptable due date.
	MaxIssueWindowDays = 28
)

var (
	ErrDateInPast = errors.New("issue date is in the past")
	ErrDateTooFar = errors.New("issue date is more than 4 weeks in the future")
)

// DefaultIssueDate returns the pre-filled due date for the issue form:
// three weeks from today.
func DefaultIssueDate(today time.Time) time.Time {
	return dateOnly(today).AddDate(0, 0, DefaultIssuePeriodDays)
}

// ValidateIssueDate checks a candidate due date against today. The window
// is inclusive on both ends: today and today+28 days are both acceptable.
// Times of day are ignored; only the calendar date matters.
func ValidateIssueDate(candidate, today time.Time) error {
	c := dateOnly(candidate)
	t := dateOnly(today)

	if c.Before(t) {
		return ErrDateInPast
	}
	if c.After(t.AddDate(0, 0, MaxIssueWindowDays)) {
		return ErrDateTooFar
	}
	return nil
}

// dateOnly reduces a time to its calendar date in a fixed location, so a
// form value parsed in UTC and a server clock in another zone compare by
// date alone.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
