package villa

import (
	"log/slog"
	"time"

	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
)

const ruleDateLayout = "2006-01-02"

// ParseSpecialPrices converts loosely-typed special-price entries (as
// stored by older admin UIs: a JSON list of maps with string or numeric
// values) into typed rules. Malformed entries are skipped, never fatal;
// each skip is logged so the data can be repaired. Rule order is
// preserved because the first matching rule wins at pricing time.
func ParseSpecialPrices(raw []map[string]any, log *slog.Logger) []SpecialRule {
	if len(raw) == 0 {
		return nil
	}
	rules := make([]SpecialRule, 0, len(raw))
	for i, entry := range raw {
		rule, ok := parseRule(entry)
		if !ok {
			if log != nil {
				log.Warn("skipping malformed special price rule", slog.Int("index", i))
			}
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

func parseRule(entry map[string]any) (SpecialRule, bool) {
	if entry == nil {
		return SpecialRule{}, false
	}
	start, ok := parseRuleDate(entry["start_date"])
	if !ok {
		return SpecialRule{}, false
	}
	end, ok := parseRuleDate(entry["end_date"])
	if !ok {
		return SpecialRule{}, false
	}
	price, ok := parseRulePrice(entry["price"])
	if !ok {
		return SpecialRule{}, false
	}
	if end.Before(start) {
		return SpecialRule{}, false
	}
	return SpecialRule{Start: start, End: end, Price: price}, true
}

func parseRuleDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return daterange.Date(v), true
	case string:
		parsed, err := time.ParseInLocation(ruleDateLayout, v, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func parseRulePrice(value any) (money.Money, bool) {
	switch v := value.(type) {
	case money.Money:
		return v, true
	case string:
		if v == "" {
			return money.Money{}, false
		}
		parsed, err := money.Parse(v)
		if err != nil || parsed.IsNegative() {
			return money.Money{}, false
		}
		return parsed, true
	case int:
		if v < 0 {
			return money.Money{}, false
		}
		return money.FromRupees(int64(v)), true
	case int64:
		if v < 0 {
			return money.Money{}, false
		}
		return money.FromRupees(v), true
	case float64:
		// JSON numbers arrive as float64; paise precision survives the
		// round trip for any realistic nightly rate.
		paise := int64(v*100 + 0.5)
		if v < 0 {
			return money.Money{}, false
		}
		return money.FromPaise(paise), true
	default:
		return money.Money{}, false
	}
}
