// Package money keeps rupee amounts as integer paise to avoid floating
// point drift in nightly sums.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedAmount = errors.New("money: malformed amount")

// maxWholeDigits caps the rupee part so amount*100 stays inside int64
// paise (int64 max is 19 digits of paise).
const maxWholeDigits = 16

// Money is an exact amount in minor units (paise). The zero value is a
// valid price of 0; "no price configured" is expressed as *Money == nil.
type Money struct {
	Amount int64
}

// FromPaise wraps a raw minor-unit amount.
func FromPaise(amount int64) Money {
	return Money{Amount: amount}
}

// FromRupees builds an amount from whole rupees.
func FromRupees(rupees int64) Money {
	return Money{Amount: rupees * 100}
}

// Parse reads a decimal rupee string ("3000", "3000.5", "3000.50") into
// paise without passing through float64.
func Parse(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Money{}, ErrMalformedAmount
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Money{}, ErrMalformedAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(whole) > maxWholeDigits {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	var amount int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
		}
		amount = amount*10 + int64(r-'0')
	}
	amount *= 100
	if len(frac) > 2 {
		// Paise precision only; anything finer is a data error.
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	mult := int64(10)
	for _, r := range frac {
		if r < '0' || r > '9' {
			return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
		}
		amount += int64(r-'0') * mult
		mult /= 10
	}
	if neg {
		amount = -amount
	}
	return Money{Amount: amount}, nil
}

// MustParse is a fixture helper that panics on malformed input.
func MustParse(raw string) Money {
	m, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount}
}

func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount - other.Amount}
}

func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times}
}

func (m Money) Neg() Money {
	return Money{Amount: -m.Amount}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// GreaterThan reports m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.Amount > other.Amount
}

// String renders the amount as a decimal rupee string, e.g. "3000.00".
func (m Money) String() string {
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// MarshalJSON emits the decimal string form so API payloads match the
// rupee amounts admins type in.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
