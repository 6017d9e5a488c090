package villa

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villadesk/internal/domain/shared/money"
)

func TestParseSpecialPrices(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	rules := ParseSpecialPrices([]map[string]any{
		{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": "5000"},
		{"start_date": "2025-01-01", "end_date": "2025-01-01", "price": float64(2500.50)},
		{"start_date": "2025-03-01", "end_date": "2025-03-05", "price": 1800},
	}, log)

	require.Len(t, rules, 3)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), rules[0].Start)
	assert.Equal(t, money.FromRupees(5000), rules[0].Price)
	assert.Equal(t, money.FromPaise(250050), rules[1].Price)
	assert.Equal(t, money.FromRupees(1800), rules[2].Price)
}

func TestParseSpecialPricesSkipsMalformedRows(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	tests := []struct {
		name string
		row  map[string]any
	}{
		{"nil row", nil},
		{"missing start", map[string]any{"end_date": "2024-12-26", "price": "5000"}},
		{"garbage date", map[string]any{"start_date": "24/12/2024", "end_date": "2024-12-26", "price": "5000"}},
		{"missing price", map[string]any{"start_date": "2024-12-24", "end_date": "2024-12-26"}},
		{"negative price", map[string]any{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": "-100"}},
		{"empty price", map[string]any{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": ""}},
		{"end before start", map[string]any{"start_date": "2024-12-26", "end_date": "2024-12-24", "price": "5000"}},
		{"price wrong type", map[string]any{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": []int{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := ParseSpecialPrices([]map[string]any{tt.row}, log)
			assert.Empty(t, rules)
		})
	}
}

func TestParseSpecialPricesPreservesOrderAroundSkips(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	rules := ParseSpecialPrices([]map[string]any{
		{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": "5000"},
		{"start_date": "bad", "end_date": "2024-12-26", "price": "1"},
		{"start_date": "2024-12-25", "end_date": "2024-12-25", "price": "9000"},
	}, log)

	require.Len(t, rules, 2)
	assert.Equal(t, money.FromRupees(5000), rules[0].Price)
	assert.Equal(t, money.FromRupees(9000), rules[1].Price)
}

func TestSpecialRuleMatchesInclusive(t *testing.T) {
	rule := SpecialRule{
		Start: time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, rule.Matches(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rule.Matches(time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)))
	assert.False(t, rule.Matches(time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)))
}
