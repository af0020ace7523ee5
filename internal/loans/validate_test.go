package loans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIssueDate(t *testing.T) {
	today := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	proposed := DefaultIssueDate(today)

	assert.Equal(t, time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), proposed)
}

func TestValidateIssueDate_AcceptsToday(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err := ValidateIssueDate(today, today)

	assert.NoError(t, err)
}

func TestValidateIssueDate_AcceptsUpperBoundary(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candidate := today.AddDate(0, 0, 28)

	err := ValidateIssueDate(candidate, today)

	assert.NoError(t, err)
}

func TestValidateIssueDate_RejectsPastDate(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candidate := today.AddDate(0, 0, -1)

	err := ValidateIssueDate(candidate, today)

	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestValidateIssueDate_RejectsDayPastWindow(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candidate := today.AddDate(0, 0, 29)

	err := ValidateIssueDate(candidate, today)

	assert.ErrorIs(t, err, ErrDateTooFar)
}

func TestValidateIssueDate_IgnoresTimeOfDay(t *testing.T) {
	// Late in the evening on the last acceptable day is still acceptable
	today := time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC)
	candidate := time.Date(2024, 3, 29, 23, 59, 0, 0, time.UTC)

	err := ValidateIssueDate(candidate, today)

	assert.NoError(t, err)
}

func TestValidateIssueDate_MixedZonesCompareByCalendarDate(t *testing.T) {
	// Form dates parse as UTC midnights while the server clock runs in its
	// own zone; only the calendar dates may decide the outcome.
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)

	upperBound := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)
	todayEast := time.Date(2024, 3, 1, 10, 0, 0, 0, tokyo)
	assert.NoError(t, ValidateIssueDate(upperBound, todayEast))

	sameDay := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	todayWest := time.Date(2024, 3, 1, 10, 0, 0, 0, newYork)
	assert.NoError(t, ValidateIssueDate(sameDay, todayWest))

	yesterday := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, ValidateIssueDate(yesterday, todayWest), ErrDateInPast)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrDateInPast))
	assert.True(t, IsValidationError(ErrDateTooFar))
	assert.False(t, IsValidationError(ErrInstanceNotFound))
	assert.False(t, IsValidationError(nil))
}
