package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	dr, err := New(time.Date(2024, 6, 1, 14, 30, 0, 0, loc), time.Date(2024, 6, 4, 9, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 1), dr.CheckIn)
	assert.Equal(t, day(2024, 6, 4), dr.CheckOut)
}

func TestNewRejectsBadRanges(t *testing.T) {
	_, err := New(day(2024, 6, 1), day(2024, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(day(2024, 6, 4), day(2024, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNights(t *testing.T) {
	dr, err := New(day(2024, 6, 1), day(2024, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())
	assert.Len(t, dr.Dates(), 3)
	assert.Equal(t, day(2024, 6, 3), dr.Dates()[2], "checkout night excluded")
}

func TestOverlaps(t *testing.T) {
	base, err := New(day(2024, 6, 1), day(2024, 6, 5))
	require.NoError(t, err)

	tests := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"partial overlap at tail", day(2024, 6, 4), day(2024, 6, 8), true},
		{"contained", day(2024, 6, 2), day(2024, 6, 3), true},
		{"containing", day(2024, 5, 30), day(2024, 6, 10), true},
		{"touching at checkout", day(2024, 6, 5), day(2024, 6, 8), false},
		{"touching at checkin", day(2024, 5, 28), day(2024, 6, 1), false},
		{"disjoint", day(2024, 7, 1), day(2024, 7, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := New(tt.in, tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.overlaps, base.Overlaps(other))
			assert.Equal(t, tt.overlaps, other.Overlaps(base))
		})
	}
}

func TestContainsDate(t *testing.T) {
	dr, err := New(day(2024, 6, 1), day(2024, 6, 5))
	require.NoError(t, err)
	assert.True(t, dr.ContainsDate(day(2024, 6, 1)))
	assert.True(t, dr.ContainsDate(day(2024, 6, 4)))
	assert.False(t, dr.ContainsDate(day(2024, 6, 5)), "checkout day is not occupied")
	assert.False(t, dr.ContainsDate(day(2024, 5, 31)))
}
