package booking

import (
	"context"
	"errors"
	"time"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/outbox"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/events"
	domainvilla "villadesk/internal/domain/villa"
)

var ErrNoClientEmail = errors.New("booking: client has no email address")

// Mailer delivers the confirmation message. Implemented by the Mailjet
// sender in infra and by a recording fake in tests.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, msg ConfirmationMessage) error
}

type ConfirmationMessage struct {
	To         string
	ClientName string
	VillaName  string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	Total      string
	Pending    string
}

type SendConfirmationCommand struct {
	BookingID string
}

func (c SendConfirmationCommand) Key() string { return "booking.send_confirmation" }

type SendConfirmationHandler struct {
	UoWFactory uow.Factory
	Mailer     Mailer
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *SendConfirmationHandler) Handle(ctx context.Context, cmd SendConfirmationCommand) (struct{}, error) {
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
	if b.ClientEmail == "" {
		return zero, ErrNoClientEmail
	}
	villaName := string(b.VillaID)
	if v, err := unit.Villas().ByID(ctx, b.VillaID); err == nil {
		villaName = v.Name
	} else if !errors.Is(err, domainvilla.ErrNotFound) {
		return zero, err
	}

	msg := ConfirmationMessage{
		To:         b.ClientEmail,
		ClientName: b.ClientName,
		VillaName:  villaName,
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Nights:     b.Nights(),
		Total:      b.TotalPayment.String(),
		Pending:    b.PendingPayment().String(),
	}
	if err := h.Mailer.SendBookingConfirmation(ctx, msg); err != nil {
		return zero, err
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	sent := []events.DomainEvent{domainbooking.ConfirmationEmailSent{
		BookingID: b.ID,
		Email:     b.ClientEmail,
		At:        now,
	}}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, sent); err != nil {
		return zero, err
	}
	if err := commit(); err != nil {
		return zero, err
	}
	return zero, nil
}

var _ commands.Handler[SendConfirmationCommand, struct{}] = (*SendConfirmationHandler)(nil)
