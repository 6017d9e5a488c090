// Package availability answers "is this villa free for these dates",
// both for the standalone availability endpoint and inside booking
// validation.
package availability

import (
	"context"

	"villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/villa"
)

// Result carries the full conflict set, not just a boolean, so callers
// can surface which bookings block the requested range.
type Result struct {
	Available bool
	Conflicts []booking.Summary
}

// Finder is the slice of the booking repository the check needs.
type Finder interface {
	FindOverlapping(ctx context.Context, villaID villa.VillaID, dr daterange.DateRange, excludeID booking.BookingID) ([]booking.Summary, error)
}

// Check runs the overlap predicate (existing.check_in < new.check_out
// AND existing.check_out > new.check_in) against stored bookings.
// excludeID skips a booking's own pre-update row on update paths.
func Check(ctx context.Context, finder Finder, villaID villa.VillaID, dr daterange.DateRange, excludeID booking.BookingID) (Result, error) {
	if err := dr.Validate(); err != nil {
		return Result{}, err
	}
	conflicts, err := finder.FindOverlapping(ctx, villaID, dr, excludeID)
	if err != nil {
		return Result{}, err
	}
	return Result{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}
