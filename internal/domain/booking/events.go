package booking

import (
	"time"

	"villadesk/internal/domain/shared/money"
	"villadesk/internal/domain/villa"
)

type BookingSaved struct {
	BookingID  BookingID
	VillaID    villa.VillaID
	ClientName string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     Status
	Total      money.Money
	Advance    money.Money
	Created    bool
	At         time.Time
}

func (e BookingSaved) EventName() string {
	if e.Created {
		return "booking.created"
	}
	return "booking.updated"
}
func (e BookingSaved) AggregateID() string   { return string(e.BookingID) }
func (e BookingSaved) OccurredAt() time.Time { return e.At }

type BookingDeleted struct {
	BookingID BookingID
	VillaID   villa.VillaID
	At        time.Time
}

func (e BookingDeleted) EventName() string     { return "booking.deleted" }
func (e BookingDeleted) AggregateID() string   { return string(e.BookingID) }
func (e BookingDeleted) OccurredAt() time.Time { return e.At }

type ConfirmationEmailSent struct {
	BookingID BookingID
	Email     string
	At        time.Time
}

func (e ConfirmationEmailSent) EventName() string     { return "booking.confirmation_sent" }
func (e ConfirmationEmailSent) AggregateID() string   { return string(e.BookingID) }
func (e ConfirmationEmailSent) OccurredAt() time.Time { return e.At }
