package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/events"
	"villadesk/internal/domain/shared/money"
	"villadesk/internal/domain/villa"
)

var (
	ErrNotFound            = errors.New("booking: not found")
	ErrClientNameRequired  = errors.New("booking: client name required")
	ErrInvalidStatus       = errors.New("booking: invalid status")
	ErrInvalidDateRange    = errors.New("booking: check-out date must be after check-in date")
	ErrGuestCountExceeded  = errors.New("booking: number of guests exceeds villa capacity")
	ErrAdvanceExceedsTotal = errors.New("booking: advance payment cannot exceed total payment")
	ErrVillaUnavailable    = errors.New("booking: villa is not available for the selected dates")
	ErrNegativeAdvance     = errors.New("booking: advance payment cannot be negative")
)

type BookingID string

type Status string

const (
	// StatusBooked is a client reservation; StatusBlocked is an
	// owner/maintenance block occupying the same calendar.
	StatusBooked  Status = "booked"
	StatusBlocked Status = "blocked"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentAdvance PaymentStatus = "advance"
	PaymentFull    PaymentStatus = "full"
)

// PaymentMethod records how money changed hands; empty means not
// recorded yet.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

type Source string

const (
	SourceCall     Source = "call"
	SourceWhatsApp Source = "whatsapp"
	SourceWebsite  Source = "website"
	SourceOther    Source = "other"
)

type Booking struct {
	ID          BookingID
	VillaID     villa.VillaID
	ClientName  string
	ClientPhone string
	ClientEmail string
	Range       daterange.DateRange
	Status      Status
	// Guests 0 means "not recorded"; capacity is only enforced when set.
	Guests        int
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	Source        Source
	Notes         string
	// TotalPayment is recomputed on every save unless OverrideTotal is
	// set, in which case the override is copied in verbatim. Pending is
	// derived (total - advance) and never stored.
	TotalPayment   money.Money
	AdvancePayment money.Money
	OverrideTotal  *money.Money
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
	events.EventRecorder
}

type CreateParams struct {
	ID             BookingID
	VillaID        villa.VillaID
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	Range          daterange.DateRange
	Status         Status
	Guests         int
	PaymentStatus  PaymentStatus
	PaymentMethod  PaymentMethod
	Source         Source
	Notes          string
	AdvancePayment money.Money
	OverrideTotal  *money.Money
	CreatedBy      string
	CreatedAt      time.Time
}

// New assembles an unpriced booking. TotalPayment is settled by the save
// pipeline through the stay cost calculator before persisting.
func New(params CreateParams) (*Booking, error) {
	name := strings.TrimSpace(params.ClientName)
	if name == "" {
		return nil, ErrClientNameRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, ErrInvalidDateRange
	}
	status := params.Status
	if status == "" {
		status = StatusBooked
	}
	if status != StatusBooked && status != StatusBlocked {
		return nil, ErrInvalidStatus
	}
	if params.AdvancePayment.IsNegative() {
		return nil, ErrNegativeAdvance
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:             params.ID,
		VillaID:        params.VillaID,
		ClientName:     name,
		ClientPhone:    strings.TrimSpace(params.ClientPhone),
		ClientEmail:    strings.TrimSpace(params.ClientEmail),
		Range:          params.Range,
		Status:         status,
		Guests:         params.Guests,
		PaymentStatus:  params.PaymentStatus,
		PaymentMethod:  params.PaymentMethod,
		Source:         params.Source,
		Notes:          params.Notes,
		AdvancePayment: params.AdvancePayment,
		OverrideTotal:  params.OverrideTotal,
		CreatedBy:      params.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return b, nil
}

// SettleTotal writes the resolved total onto the booking and validates
// the advance against it. Called by the save pipeline after pricing.
func (b *Booking) SettleTotal(total money.Money, now time.Time) error {
	if b.AdvancePayment.GreaterThan(total) {
		return ErrAdvanceExceedsTotal
	}
	b.TotalPayment = total
	b.UpdatedAt = now.UTC()
	return nil
}

// PendingPayment is always derived, never persisted.
func (b *Booking) PendingPayment() money.Money {
	return b.TotalPayment.Sub(b.AdvancePayment)
}

func (b *Booking) Nights() int {
	return b.Range.Nights()
}

// ListFilter narrows booking listings. Zero values mean "no filter";
// the check-in bounds are both inclusive.
type ListFilter struct {
	VillaID       villa.VillaID
	Status        Status
	CheckInAfter  time.Time
	CheckInBefore time.Time
	// Search matches client name or phone, case-insensitive substring.
	Search string
}

// Summary is the conflict/report projection of a booking.
type Summary struct {
	ID         BookingID
	VillaID    villa.VillaID
	ClientName string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     Status
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id BookingID) error
	// List returns bookings sorted by check-in date descending.
	List(ctx context.Context, filter ListFilter) ([]*Booking, error)
	// FindOverlapping returns summaries of bookings for the villa whose
	// half-open ranges overlap dr, excluding excludeID when non-empty.
	FindOverlapping(ctx context.Context, villaID villa.VillaID, dr daterange.DateRange, excludeID BookingID) ([]Summary, error)
	// InRange returns bookings intersecting the inclusive window, for
	// calendar views. villaID narrows when non-empty.
	InRange(ctx context.Context, start, end time.Time, villaID villa.VillaID) ([]*Booking, error)
	CountByVilla(ctx context.Context, villaID villa.VillaID) (int, error)
}
