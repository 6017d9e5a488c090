package ginserver

import (
	"fmt"
	"time"

	"villadesk/internal/domain/shared/money"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// parseMoney accepts decimal strings with up to two fractional digits.
func parseMoney(value string) (money.Money, error) {
	return money.Parse(value)
}

func parseOptionalMoney(value *string) (*money.Money, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	m, err := money.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
