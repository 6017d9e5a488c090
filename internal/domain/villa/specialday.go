package villa

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrSpecialDayName     = errors.New("villa: special day name required")
	ErrSpecialDayDate     = errors.New("villa: special day date out of range")
	ErrSpecialDayNotFound = errors.New("villa: special day not found")
)

// GlobalSpecialDay marks a calendar day (one-off when Year is set,
// recurring otherwise). It is informational configuration for the admin
// calendar; the pricing resolver deliberately does not consult it.
type GlobalSpecialDay struct {
	ID    string
	Name  string
	Day   int
	Month time.Month
	// Year 0 means the day recurs every year.
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewGlobalSpecialDay(id, name string, day int, month time.Month, year int, now time.Time) (*GlobalSpecialDay, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSpecialDayName
	}
	if month < time.January || month > time.December {
		return nil, ErrSpecialDayDate
	}
	if day < 1 || day > daysIn(month, year) {
		return nil, ErrSpecialDayDate
	}
	return &GlobalSpecialDay{
		ID:        id,
		Name:      name,
		Day:       day,
		Month:     month,
		Year:      year,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// MatchesDate reports whether the marker falls on the given calendar date.
func (d *GlobalSpecialDay) MatchesDate(date time.Time) bool {
	if d.Year != 0 && d.Year != date.Year() {
		return false
	}
	return d.Month == date.Month() && d.Day == date.Day()
}

func daysIn(month time.Month, year int) int {
	if year == 0 {
		// Recurring days accept Feb 29.
		year = 2024
	}
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type SpecialDayRepository interface {
	ByID(ctx context.Context, id string) (*GlobalSpecialDay, error)
	Save(ctx context.Context, day *GlobalSpecialDay) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*GlobalSpecialDay, error)
}
