package memory

import (
	"context"
	"errors"

	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	domainvilla "villadesk/internal/domain/villa"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	VillaRepo      domainvilla.Repository
	BookingRepo    domainbooking.Repository
	SpecialDayRepo domainvilla.SpecialDayRepository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is
// provided but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.VillaRepo == nil || f.BookingRepo == nil || f.SpecialDayRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		villas:      f.VillaRepo,
		bookings:    f.BookingRepo,
		specialDays: f.SpecialDayRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	villas      domainvilla.Repository
	bookings    domainbooking.Repository
	specialDays domainvilla.SpecialDayRepository
}

func (u *Unit) Villas() domainvilla.Repository {
	return u.villas
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) SpecialDays() domainvilla.SpecialDayRepository {
	return u.specialDays
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
