package villa

import (
	"context"
	"time"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainavailability "villadesk/internal/domain/availability"
	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	domainvilla "villadesk/internal/domain/villa"
)

// AvailabilityQuery asks whether a villa is free for [CheckIn, CheckOut).
// ExcludeBookingID skips one booking, used when editing an existing stay.
type AvailabilityQuery struct {
	VillaID          string
	CheckIn          time.Time
	CheckOut         time.Time
	ExcludeBookingID string
}

func (q AvailabilityQuery) Key() string { return "villa.availability" }

type AvailabilityHandler struct {
	UoWFactory uow.Factory
}

func (h *AvailabilityHandler) Handle(ctx context.Context, q AvailabilityQuery) (dto.AvailabilityDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	dr, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.AvailabilityDTO{}, domainbooking.ErrInvalidDateRange
	}
	if _, err := unit.Villas().ByID(ctx, domainvilla.VillaID(q.VillaID)); err != nil {
		return dto.AvailabilityDTO{}, err
	}
	res, err := domainavailability.Check(ctx, unit.Bookings(), domainvilla.VillaID(q.VillaID), dr, domainbooking.BookingID(q.ExcludeBookingID))
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	return dto.AvailabilityDTO{
		Available:           res.Available,
		ConflictingBookings: dto.MapConflicts(res.Conflicts),
	}, nil
}

var _ queries.Handler[AvailabilityQuery, dto.AvailabilityDTO] = (*AvailabilityHandler)(nil)
