// Package uow defines the transaction boundary the booking save pipeline
// runs inside: the availability check and the subsequent write must not
// be separated by a window another request could slip a conflicting
// booking into.
package uow

import (
	"context"

	domainbooking "villadesk/internal/domain/booking"
	domainvilla "villadesk/internal/domain/villa"
)

// UnitOfWork coordinates repositories inside one transaction.
type UnitOfWork interface {
	Villas() domainvilla.Repository
	Bookings() domainbooking.Repository
	SpecialDays() domainvilla.SpecialDayRepository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
