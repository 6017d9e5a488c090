package booking

import (
	"context"
	"time"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/outbox"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/events"
)

type DeleteBookingCommand struct {
	BookingID string
}

func (c DeleteBookingCommand) Key() string { return "booking.delete" }

type DeleteBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *DeleteBookingHandler) Handle(ctx context.Context, cmd DeleteBookingCommand) (struct{}, error) {
	var zero struct{}
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	defer rollback()

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return zero, err
	}
	if err := unit.Bookings().Delete(ctx, b.ID); err != nil {
		return zero, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	deleted := []events.DomainEvent{domainbooking.BookingDeleted{
		BookingID: b.ID,
		VillaID:   b.VillaID,
		At:        now,
	}}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, deleted); err != nil {
		return zero, err
	}
	if err := commit(); err != nil {
		return zero, err
	}
	return zero, nil
}

var _ commands.Handler[DeleteBookingCommand, struct{}] = (*DeleteBookingHandler)(nil)
