package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/villa"
)

// stubFinder applies the overlap predicate in memory over fixed summaries.
type stubFinder struct {
	stored []booking.Summary
}

func (f stubFinder) FindOverlapping(_ context.Context, villaID villa.VillaID, dr daterange.DateRange, excludeID booking.BookingID) ([]booking.Summary, error) {
	var out []booking.Summary
	for _, s := range f.stored {
		if s.VillaID != villaID || s.ID == excludeID {
			continue
		}
		if s.CheckIn.Before(dr.CheckOut) && s.CheckOut.After(dr.CheckIn) {
			out = append(out, s)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheck(t *testing.T) {
	finder := stubFinder{stored: []booking.Summary{
		{ID: "b-1", VillaID: "v-1", ClientName: "Asha", CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 5)},
		{ID: "b-2", VillaID: "v-1", ClientName: "Ravi", CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 12)},
		{ID: "b-3", VillaID: "v-2", ClientName: "Meera", CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 30)},
	}}

	t.Run("overlap reported with conflict set", func(t *testing.T) {
		dr, err := daterange.New(day(2024, 6, 4), day(2024, 6, 8))
		require.NoError(t, err)
		res, err := Check(context.Background(), finder, "v-1", dr, "")
		require.NoError(t, err)
		assert.False(t, res.Available)
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, booking.BookingID("b-1"), res.Conflicts[0].ID)
	})

	t.Run("touching ranges are free", func(t *testing.T) {
		dr, err := daterange.New(day(2024, 6, 5), day(2024, 6, 8))
		require.NoError(t, err)
		res, err := Check(context.Background(), finder, "v-1", dr, "")
		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("self exclusion on update", func(t *testing.T) {
		dr, err := daterange.New(day(2024, 6, 2), day(2024, 6, 6))
		require.NoError(t, err)
		res, err := Check(context.Background(), finder, "v-1", dr, "b-1")
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("other villa does not conflict", func(t *testing.T) {
		dr, err := daterange.New(day(2024, 6, 20), day(2024, 6, 25))
		require.NoError(t, err)
		res, err := Check(context.Background(), finder, "v-1", dr, "")
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("multiple conflicts all reported", func(t *testing.T) {
		dr, err := daterange.New(day(2024, 6, 3), day(2024, 6, 11))
		require.NoError(t, err)
		res, err := Check(context.Background(), finder, "v-1", dr, "")
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 2)
	})

	t.Run("invalid range rejected", func(t *testing.T) {
		dr := daterange.DateRange{CheckIn: day(2024, 6, 5), CheckOut: day(2024, 6, 5)}
		_, err := Check(context.Background(), finder, "v-1", dr, "")
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}
