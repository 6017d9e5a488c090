package booking

import (
	"context"
	"errors"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	domainvilla "villadesk/internal/domain/villa"
)

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return "booking.get" }

type GetBookingHandler struct {
	UoWFactory uow.Factory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.BookingDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(q.BookingID))
	if err != nil {
		return dto.BookingDTO{}, err
	}
	v, err := unit.Villas().ByID(ctx, b.VillaID)
	if err != nil {
		if !errors.Is(err, domainvilla.ErrNotFound) {
			return dto.BookingDTO{}, err
		}
		v = nil
	}
	return dto.MapBooking(b, v), nil
}

var _ queries.Handler[GetBookingQuery, dto.BookingDTO] = (*GetBookingHandler)(nil)
