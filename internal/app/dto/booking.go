package dto

import (
	"time"

	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

type BookingDTO struct {
	ID             string           `json:"id"`
	Villa          VillaSummaryDTO  `json:"villa"`
	ClientName     string           `json:"client_name"`
	ClientPhone    string           `json:"client_phone,omitempty"`
	ClientEmail    string           `json:"client_email,omitempty"`
	CheckIn        string           `json:"check_in"`
	CheckOut       string           `json:"check_out"`
	Status         string           `json:"status"`
	NumberOfGuests int              `json:"number_of_guests,omitempty"`
	PaymentStatus  string           `json:"payment_status,omitempty"`
	PaymentMethod  string           `json:"payment_method,omitempty"`
	BookingSource  string           `json:"booking_source,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	TotalPayment   money.Money      `json:"total_payment"`
	AdvancePayment money.Money      `json:"advance_payment"`
	PendingPayment money.Money      `json:"pending_payment"`
	OverrideTotal  *money.Money     `json:"override_total_payment,omitempty"`
	Nights         int              `json:"nights"`
	CreatedBy      string           `json:"created_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func MapBooking(b *domainbooking.Booking, v *domainvilla.Villa) BookingDTO {
	dto := BookingDTO{
		ID:             string(b.ID),
		ClientName:     b.ClientName,
		ClientPhone:    b.ClientPhone,
		ClientEmail:    b.ClientEmail,
		CheckIn:        b.Range.CheckIn.Format(dateLayout),
		CheckOut:       b.Range.CheckOut.Format(dateLayout),
		Status:         string(b.Status),
		NumberOfGuests: b.Guests,
		PaymentStatus:  string(b.PaymentStatus),
		PaymentMethod:  string(b.PaymentMethod),
		BookingSource:  string(b.Source),
		Notes:          b.Notes,
		TotalPayment:   b.TotalPayment,
		AdvancePayment: b.AdvancePayment,
		PendingPayment: b.PendingPayment(),
		OverrideTotal:  b.OverrideTotal,
		Nights:         b.Nights(),
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if v != nil {
		dto.Villa = MapVillaSummary(v)
	} else {
		dto.Villa = VillaSummaryDTO{ID: string(b.VillaID)}
	}
	return dto
}

type BookingCollection struct {
	Items []BookingDTO `json:"items"`
}

// ConflictDTO describes one booking blocking a requested range.
type ConflictDTO struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
}

type AvailabilityDTO struct {
	Available           bool          `json:"available"`
	ConflictingBookings []ConflictDTO `json:"conflicting_bookings"`
}

func MapConflicts(summaries []domainbooking.Summary) []ConflictDTO {
	out := make([]ConflictDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ConflictDTO{
			ID:         string(s.ID),
			ClientName: s.ClientName,
			CheckIn:    s.CheckIn.Format(dateLayout),
			CheckOut:   s.CheckOut.Format(dateLayout),
			Status:     string(s.Status),
		})
	}
	return out
}

// CalendarEntryDTO is one bar on the admin calendar.
type CalendarEntryDTO struct {
	ID         string `json:"id"`
	VillaID    string `json:"villa_id"`
	VillaName  string `json:"villa_name"`
	ClientName string `json:"client_name"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
}
