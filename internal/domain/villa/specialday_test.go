package villa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGlobalSpecialDay(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	day, err := NewGlobalSpecialDay("sd-1", "Diwali", 1, time.November, 2024, now)
	require.NoError(t, err)
	assert.Equal(t, 2024, day.Year)

	_, err = NewGlobalSpecialDay("sd-2", "  ", 1, time.November, 2024, now)
	assert.ErrorIs(t, err, ErrSpecialDayName)

	_, err = NewGlobalSpecialDay("sd-3", "Bad month", 1, time.Month(13), 2024, now)
	assert.ErrorIs(t, err, ErrSpecialDayDate)

	_, err = NewGlobalSpecialDay("sd-4", "Bad day", 31, time.February, 2023, now)
	assert.ErrorIs(t, err, ErrSpecialDayDate)

	_, err = NewGlobalSpecialDay("sd-5", "Leap recurring", 29, time.February, 0, now)
	assert.NoError(t, err, "recurring days may use Feb 29")

	_, err = NewGlobalSpecialDay("sd-6", "Non-leap year", 29, time.February, 2023, now)
	assert.ErrorIs(t, err, ErrSpecialDayDate)
}

func TestGlobalSpecialDayMatchesDate(t *testing.T) {
	recurring := &GlobalSpecialDay{Name: "New Year", Day: 1, Month: time.January}
	assert.True(t, recurring.MatchesDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, recurring.MatchesDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, recurring.MatchesDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	oneOff := &GlobalSpecialDay{Name: "Opening", Day: 15, Month: time.August, Year: 2024}
	assert.True(t, oneOff.MatchesDate(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, oneOff.MatchesDate(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)))
}
