// Package pricing is the single implementation of nightly price
// resolution and stay cost computation. Booking saves, price previews
// and reporting all call through here; nothing else walks stay dates.
package pricing

import (
	"time"

	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	"villadesk/internal/domain/villa"
)

// NightKind tags how one night's price was resolved.
type NightKind string

const (
	NightBase    NightKind = "base"
	NightWeekend NightKind = "weekend"
	NightSpecial NightKind = "special"
)

// Resolve prices a single calendar date against the villa's pricing
// configuration. Priority, first match wins:
//
//  1. special rule (scanned in stored order, inclusive date window)
//  2. weekend price (weekend days configured and price set)
//  3. base nightly price
func Resolve(cfg villa.PricingConfig, date time.Time) (money.Money, NightKind) {
	date = daterange.Date(date)
	for _, rule := range cfg.SpecialRules {
		if rule.Matches(date) {
			return rule.Price, NightSpecial
		}
	}
	if cfg.WeekendPrice != nil && len(cfg.WeekendDays) > 0 {
		day := villa.WeekdayIndex(date)
		for _, configured := range cfg.WeekendDays {
			if configured == day {
				return *cfg.WeekendPrice, NightWeekend
			}
		}
	}
	return cfg.BasePrice, NightBase
}

// PriceForDate resolves just the nightly price.
func PriceForDate(cfg villa.PricingConfig, date time.Time) money.Money {
	price, _ := Resolve(cfg, date)
	return price
}

// Night is one priced night of a stay breakdown.
type Night struct {
	Date  time.Time
	Price money.Money
	Kind  NightKind
}

// StayQuote is the result of pricing one stay.
type StayQuote struct {
	Total   money.Money
	Advance money.Money
	// Pending is always Total - Advance, derived and never stored.
	Pending money.Money
	Nights  int
	// Overridden is set when a manual total bypassed the nightly loop;
	// Breakdown and the per-kind counts stay empty in that case.
	Overridden    bool
	Breakdown     []Night
	BaseNights    int
	WeekendNights int
	SpecialNights int
}

// ComputeStay prices the half-open range [CheckIn, CheckOut). When
// override is non-nil the nightly loop is skipped entirely and the
// override becomes the total. The function only computes; callers
// enforce the advance-versus-total invariant before persisting.
func ComputeStay(cfg villa.PricingConfig, dr daterange.DateRange, override *money.Money, advance money.Money) (StayQuote, error) {
	if err := dr.Validate(); err != nil {
		return StayQuote{}, err
	}
	quote := StayQuote{
		Advance: advance,
		Nights:  dr.Nights(),
	}
	if override != nil {
		quote.Total = *override
		quote.Overridden = true
		quote.Pending = quote.Total.Sub(advance)
		return quote, nil
	}
	quote.Breakdown = make([]Night, 0, quote.Nights)
	for _, date := range dr.Dates() {
		price, kind := Resolve(cfg, date)
		quote.Total = quote.Total.Add(price)
		quote.Breakdown = append(quote.Breakdown, Night{Date: date, Price: price, Kind: kind})
		switch kind {
		case NightSpecial:
			quote.SpecialNights++
		case NightWeekend:
			quote.WeekendNights++
		default:
			quote.BaseNights++
		}
	}
	quote.Pending = quote.Total.Sub(advance)
	return quote, nil
}
