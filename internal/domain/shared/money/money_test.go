package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw   string
		want  int64
		fails bool
	}{
		{raw: "3000", want: 300000},
		{raw: "3000.5", want: 300050},
		{raw: "3000.50", want: 300050},
		{raw: "0.05", want: 5},
		{raw: ".5", want: 50},
		{raw: "-250", want: -25000},
		{raw: " 42 ", want: 4200},
		{raw: "9999999999999999", want: 999999999999999900},
		{raw: "10000000000000000", fails: true},
		{raw: "99999999999999999999", fails: true},
		{raw: "", fails: true},
		{raw: ".", fails: true},
		{raw: "12.345", fails: true},
		{raw: "12,50", fails: true},
		{raw: "abc", fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.fails {
				assert.ErrorIs(t, err, ErrMalformedAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Amount)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "3000.00", FromRupees(3000).String())
	assert.Equal(t, "3000.50", FromPaise(300050).String())
	assert.Equal(t, "0.05", FromPaise(5).String())
	assert.Equal(t, "-12.50", FromPaise(-1250).String())
}

func TestArithmetic(t *testing.T) {
	a := FromRupees(1000)
	b := FromRupees(300)
	assert.Equal(t, FromRupees(1300), a.Add(b))
	assert.Equal(t, FromRupees(700), a.Sub(b))
	assert.Equal(t, FromRupees(3000), a.Multiply(3))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.Sub(a).IsNegative())
	assert.True(t, Money{}.IsZero())
}

func TestJSONRoundTrip(t *testing.T) {
	m := FromPaise(300050)
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"3000.50"`, string(data))

	var out Money
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, m, out)

	var fromNumber Money
	require.NoError(t, fromNumber.UnmarshalJSON([]byte("1250.25")))
	assert.Equal(t, int64(125025), fromNumber.Amount)
}
