package booking

import (
	"context"
	"errors"
	"time"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	domainvilla "villadesk/internal/domain/villa"
)

type ListBookingsQuery struct {
	VillaID       string
	Status        string
	CheckInAfter  time.Time
	CheckInBefore time.Time
	Search        string
}

func (q ListBookingsQuery) Key() string { return "booking.list" }

type ListBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListBookingsHandler) Handle(ctx context.Context, q ListBookingsQuery) (dto.BookingCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	filter := domainbooking.ListFilter{
		VillaID:       domainvilla.VillaID(q.VillaID),
		Status:        domainbooking.Status(q.Status),
		CheckInAfter:  q.CheckInAfter,
		CheckInBefore: q.CheckInBefore,
		Search:        q.Search,
	}
	items, err := unit.Bookings().List(ctx, filter)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	villas := villaCache{unit: unit}
	out := dto.BookingCollection{Items: make([]dto.BookingDTO, 0, len(items))}
	for _, b := range items {
		v, err := villas.get(ctx, b.VillaID)
		if err != nil {
			return dto.BookingCollection{}, err
		}
		out.Items = append(out.Items, dto.MapBooking(b, v))
	}
	return out, nil
}

// villaCache memoizes villa lookups while mapping a listing; deleted
// villas map to nil rather than failing the whole page.
type villaCache struct {
	unit   uow.UnitOfWork
	loaded map[domainvilla.VillaID]*domainvilla.Villa
}

func (c *villaCache) get(ctx context.Context, id domainvilla.VillaID) (*domainvilla.Villa, error) {
	if v, ok := c.loaded[id]; ok {
		return v, nil
	}
	v, err := c.unit.Villas().ByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domainvilla.ErrNotFound) {
			return nil, err
		}
		v = nil
	}
	if c.loaded == nil {
		c.loaded = make(map[domainvilla.VillaID]*domainvilla.Villa)
	}
	c.loaded[id] = v
	return v, nil
}

var _ queries.Handler[ListBookingsQuery, dto.BookingCollection] = (*ListBookingsHandler)(nil)
