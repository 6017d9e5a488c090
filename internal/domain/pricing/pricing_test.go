package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	"villadesk/internal/domain/villa"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(m money.Money) *money.Money { return &m }

func TestResolvePriority(t *testing.T) {
	weekend := money.FromRupees(2000)
	cfg := villa.PricingConfig{
		BasePrice:    money.FromRupees(1000),
		WeekendPrice: &weekend,
		WeekendDays:  []int{5, 6}, // Saturday, Sunday
		SpecialRules: []villa.SpecialRule{
			{Start: date(2024, 12, 24), End: date(2024, 12, 26), Price: money.FromRupees(5000)},
			{Start: date(2024, 12, 25), End: date(2024, 12, 25), Price: money.FromRupees(9000)},
		},
	}

	tests := []struct {
		name string
		day  time.Time
		want money.Money
		kind NightKind
	}{
		{"weekday falls back to base", date(2024, 12, 23), money.FromRupees(1000), NightBase},
		{"saturday uses weekend price", date(2024, 12, 28), money.FromRupees(2000), NightWeekend},
		{"special beats weekend", date(2024, 12, 25), money.FromRupees(5000), NightSpecial},
		{"first matching rule wins", date(2024, 12, 25), money.FromRupees(5000), NightSpecial},
		{"rule window is inclusive", date(2024, 12, 26), money.FromRupees(5000), NightSpecial},
		{"day after rule window", date(2024, 12, 27), money.FromRupees(1000), NightBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := Resolve(cfg, tt.day)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestResolveWeekendRequiresBothPriceAndDays(t *testing.T) {
	saturday := date(2024, 6, 8)

	cfg := villa.PricingConfig{BasePrice: money.FromRupees(1000), WeekendDays: []int{5, 6}}
	got, kind := Resolve(cfg, saturday)
	assert.Equal(t, money.FromRupees(1000), got, "no weekend price configured")
	assert.Equal(t, NightBase, kind)

	weekend := money.FromRupees(2000)
	cfg = villa.PricingConfig{BasePrice: money.FromRupees(1000), WeekendPrice: &weekend}
	got, kind = Resolve(cfg, saturday)
	assert.Equal(t, money.FromRupees(1000), got, "no weekend days configured")
	assert.Equal(t, NightBase, kind)
}

func TestComputeStayBaseOnly(t *testing.T) {
	cfg := villa.PricingConfig{BasePrice: money.FromRupees(1000)}
	dr, err := daterange.New(date(2024, 6, 1), date(2024, 6, 4))
	require.NoError(t, err)

	quote, err := ComputeStay(cfg, dr, nil, money.Money{})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(3000), quote.Total)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 3, quote.BaseNights)
	assert.Len(t, quote.Breakdown, 3)
	assert.False(t, quote.Overridden)
}

func TestComputeStayWeekendMix(t *testing.T) {
	weekend := money.FromRupees(2000)
	cfg := villa.PricingConfig{
		BasePrice:    money.FromRupees(1000),
		WeekendPrice: &weekend,
		WeekendDays:  []int{5, 6},
	}
	// Friday 2024-06-07 through Monday 2024-06-10: Fri base, Sat+Sun weekend.
	dr, err := daterange.New(date(2024, 6, 7), date(2024, 6, 10))
	require.NoError(t, err)

	quote, err := ComputeStay(cfg, dr, nil, money.Money{})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(5000), quote.Total)
	assert.Equal(t, 1, quote.BaseNights)
	assert.Equal(t, 2, quote.WeekendNights)
	assert.Equal(t, 0, quote.SpecialNights)
}

func TestComputeStayOneNight(t *testing.T) {
	cfg := villa.PricingConfig{BasePrice: money.FromRupees(1500)}
	dr, err := daterange.New(date(2024, 6, 1), date(2024, 6, 2))
	require.NoError(t, err)

	quote, err := ComputeStay(cfg, dr, nil, money.Money{})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(1500), quote.Total)
	assert.Equal(t, 1, quote.Nights)
}

func TestComputeStaySameDayRejected(t *testing.T) {
	cfg := villa.PricingConfig{BasePrice: money.FromRupees(1000)}
	dr := daterange.DateRange{CheckIn: date(2024, 6, 1), CheckOut: date(2024, 6, 1)}

	_, err := ComputeStay(cfg, dr, nil, money.Money{})
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestComputeStayOverrideSkipsBreakdown(t *testing.T) {
	weekend := money.FromRupees(9999)
	cfg := villa.PricingConfig{
		BasePrice:    money.FromRupees(1000),
		WeekendPrice: &weekend,
		WeekendDays:  []int{5, 6},
	}
	dr, err := daterange.New(date(2024, 6, 1), date(2024, 6, 8))
	require.NoError(t, err)

	quote, err := ComputeStay(cfg, dr, ptr(money.FromRupees(4200)), money.FromRupees(1000))
	require.NoError(t, err)
	assert.True(t, quote.Overridden)
	assert.Equal(t, money.FromRupees(4200), quote.Total)
	assert.Equal(t, money.FromRupees(3200), quote.Pending)
	assert.Empty(t, quote.Breakdown)
	assert.Zero(t, quote.BaseNights)
	assert.Zero(t, quote.WeekendNights)
}

func TestComputeStayPendingDerived(t *testing.T) {
	cfg := villa.PricingConfig{BasePrice: money.FromRupees(1000)}
	dr, err := daterange.New(date(2024, 6, 1), date(2024, 6, 4))
	require.NoError(t, err)

	quote, err := ComputeStay(cfg, dr, nil, money.FromRupees(1200))
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(1800), quote.Pending)
}

func TestComputeStayRecomputeIsIdempotent(t *testing.T) {
	weekend := money.FromRupees(2000)
	cfg := villa.PricingConfig{
		BasePrice:    money.FromRupees(1000),
		WeekendPrice: &weekend,
		WeekendDays:  []int{5, 6},
		SpecialRules: []villa.SpecialRule{
			{Start: date(2024, 6, 8), End: date(2024, 6, 8), Price: money.FromRupees(7000)},
		},
	}
	dr, err := daterange.New(date(2024, 6, 6), date(2024, 6, 11))
	require.NoError(t, err)

	first, err := ComputeStay(cfg, dr, nil, money.FromRupees(500))
	require.NoError(t, err)
	second, err := ComputeStay(cfg, dr, nil, money.FromRupees(500))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWeekdayIndexConvention(t *testing.T) {
	// 2024-06-03 is a Monday.
	assert.Equal(t, 0, villa.WeekdayIndex(date(2024, 6, 3)))
	assert.Equal(t, 5, villa.WeekdayIndex(date(2024, 6, 8)))
	assert.Equal(t, 6, villa.WeekdayIndex(date(2024, 6, 9)))
}
