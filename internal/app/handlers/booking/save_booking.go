package booking

import (
	"context"
	"time"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	"villadesk/internal/app/middleware"
	"villadesk/internal/app/outbox"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainavailability "villadesk/internal/domain/availability"
	domainbooking "villadesk/internal/domain/booking"
	domainpricing "villadesk/internal/domain/pricing"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

const saveBookingKey = "booking.save"

// SaveBookingCommand covers create (empty BookingID) and update. Every
// save re-runs the full validation pipeline, even when only notes
// changed, against the current villa snapshot.
type SaveBookingCommand struct {
	BookingID       string
	VillaID         string
	ClientName      string
	ClientPhone     string
	ClientEmail     string
	CheckIn         time.Time
	CheckOut        time.Time
	Status          string
	Guests          int
	PaymentStatus   string
	PaymentMethod   string
	Source          string
	Notes           string
	AdvancePayment  money.Money
	OverrideTotal   *money.Money
	ActorID         string
	IdempotencyKeyV string
}

func (c SaveBookingCommand) Key() string { return saveBookingKey }

func (c SaveBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SaveBookingCommand) ResultPrototype() any { return &SaveBookingResult{} }

type SaveBookingResult struct {
	Booking dto.BookingDTO `json:"booking"`
	Created bool           `json:"created"`
}

// UnavailableError carries the conflict set alongside the
// villa-unavailable rejection so callers can show what blocks the range.
type UnavailableError struct {
	Conflicts []domainbooking.Summary
}

func (e *UnavailableError) Error() string { return domainbooking.ErrVillaUnavailable.Error() }

func (e *UnavailableError) Unwrap() error { return domainbooking.ErrVillaUnavailable }

type SaveBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *SaveBookingHandler) Handle(ctx context.Context, cmd SaveBookingCommand) (*SaveBookingResult, error) {
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer rollback()

	dr, err := daterange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, domainbooking.ErrInvalidDateRange
	}

	villa, err := unit.Villas().ByID(ctx, domainvilla.VillaID(cmd.VillaID))
	if err != nil {
		return nil, err
	}
	if cmd.Guests > 0 && cmd.Guests > villa.MaxGuests {
		return nil, domainbooking.ErrGuestCountExceeded
	}

	quote, err := domainpricing.ComputeStay(villa.Pricing, dr, cmd.OverrideTotal, cmd.AdvancePayment)
	if err != nil {
		return nil, err
	}
	// Payment validation precedes the availability check so a request
	// that is wrong on both counts reports the payment problem.
	if cmd.AdvancePayment.GreaterThan(quote.Total) {
		return nil, domainbooking.ErrAdvanceExceedsTotal
	}

	check, err := domainavailability.Check(ctx, unit.Bookings(), villa.ID, dr, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	if !check.Available {
		return nil, &UnavailableError{Conflicts: check.Conflicts}
	}

	now := h.now()
	var b *domainbooking.Booking
	created := cmd.BookingID == ""
	if created {
		b, err = domainbooking.New(domainbooking.CreateParams{
			ID:             domainbooking.BookingID(newBookingID()),
			VillaID:        villa.ID,
			ClientName:     cmd.ClientName,
			ClientPhone:    cmd.ClientPhone,
			ClientEmail:    cmd.ClientEmail,
			Range:          dr,
			Status:         domainbooking.Status(cmd.Status),
			Guests:         cmd.Guests,
			PaymentStatus:  domainbooking.PaymentStatus(cmd.PaymentStatus),
			PaymentMethod:  domainbooking.PaymentMethod(cmd.PaymentMethod),
			Source:         domainbooking.Source(cmd.Source),
			Notes:          cmd.Notes,
			AdvancePayment: cmd.AdvancePayment,
			OverrideTotal:  cmd.OverrideTotal,
			CreatedBy:      cmd.ActorID,
			CreatedAt:      now,
		})
		if err != nil {
			return nil, err
		}
	} else {
		b, err = unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
		if err != nil {
			return nil, err
		}
		if err := applyUpdate(b, cmd, dr); err != nil {
			return nil, err
		}
	}

	if err := b.SettleTotal(quote.Total, now); err != nil {
		return nil, err
	}
	b.Record(domainbooking.BookingSaved{
		BookingID:  b.ID,
		VillaID:    b.VillaID,
		ClientName: b.ClientName,
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Status:     b.Status,
		Total:      b.TotalPayment,
		Advance:    b.AdvancePayment,
		Created:    created,
		At:         now,
	})

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	pending := b.PendingEvents()
	b.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return &SaveBookingResult{Booking: dto.MapBooking(b, villa), Created: created}, nil
}

func applyUpdate(b *domainbooking.Booking, cmd SaveBookingCommand, dr daterange.DateRange) error {
	if cmd.ClientName == "" {
		return domainbooking.ErrClientNameRequired
	}
	status := domainbooking.Status(cmd.Status)
	if status == "" {
		status = b.Status
	}
	if status != domainbooking.StatusBooked && status != domainbooking.StatusBlocked {
		return domainbooking.ErrInvalidStatus
	}
	if cmd.AdvancePayment.IsNegative() {
		return domainbooking.ErrNegativeAdvance
	}
	b.VillaID = domainvilla.VillaID(cmd.VillaID)
	b.ClientName = cmd.ClientName
	b.ClientPhone = cmd.ClientPhone
	b.ClientEmail = cmd.ClientEmail
	b.Range = dr
	b.Status = status
	b.Guests = cmd.Guests
	b.PaymentStatus = domainbooking.PaymentStatus(cmd.PaymentStatus)
	b.PaymentMethod = domainbooking.PaymentMethod(cmd.PaymentMethod)
	b.Source = domainbooking.Source(cmd.Source)
	b.Notes = cmd.Notes
	b.AdvancePayment = cmd.AdvancePayment
	b.OverrideTotal = cmd.OverrideTotal
	return nil
}

func (h *SaveBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func (h *SaveBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[SaveBookingCommand, *SaveBookingResult] = (*SaveBookingHandler)(nil)
var _ middleware.IdempotentCommand = SaveBookingCommand{}
