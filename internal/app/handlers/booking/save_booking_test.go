package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
	"villadesk/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	factory  memory.Factory
	villas   *memory.VillaRepository
	bookings *memory.BookingRepository
	box      *memory.Outbox
	handler  *SaveBookingHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	villas := memory.NewVillaRepository()
	bookings := memory.NewBookingRepository()
	factory := memory.Factory{
		VillaRepo:      villas,
		BookingRepo:    bookings,
		SpecialDayRepo: memory.NewSpecialDayRepository(),
	}
	box := memory.NewOutbox()
	return &fixture{
		factory:  factory,
		villas:   villas,
		bookings: bookings,
		box:      box,
		handler: &SaveBookingHandler{
			UoWFactory: factory,
			Outbox:     box,
			Now:        func() time.Time { return day(2024, 5, 1) },
		},
	}
}

func (f *fixture) addVilla(t *testing.T, id string, maxGuests int) {
	t.Helper()
	weekend := money.FromRupees(2000)
	v, err := domainvilla.New(domainvilla.CreateParams{
		ID:        domainvilla.VillaID(id),
		Name:      "Villa " + id,
		MaxGuests: maxGuests,
		Pricing: domainvilla.PricingConfig{
			BasePrice:    money.FromRupees(1000),
			WeekendPrice: &weekend,
			WeekendDays:  []int{5, 6},
		},
		CreatedAt: day(2024, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, f.villas.Save(context.Background(), v))
}

func TestSaveBookingCreate(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	res, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:        "v-1",
		ClientName:     "Asha Kumar",
		ClientPhone:    "9876543210",
		CheckIn:        day(2024, 6, 3),
		CheckOut:       day(2024, 6, 6),
		Guests:         4,
		PaymentMethod:  "cash",
		AdvancePayment: money.FromRupees(1000),
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, money.FromRupees(3000), res.Booking.TotalPayment)
	assert.Equal(t, money.FromRupees(2000), res.Booking.PendingPayment)
	assert.Equal(t, 3, res.Booking.Nights)
	assert.Equal(t, "cash", res.Booking.PaymentMethod)

	stored, err := f.bookings.ByID(context.Background(), domainbooking.BookingID(res.Booking.ID))
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(3000), stored.TotalPayment)

	records := f.box.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "booking.created", records[0].Name)
}

func TestSaveBookingWeekendPricing(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	// Friday through Monday: one base night, two weekend nights.
	res, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Ravi",
		CheckIn:    day(2024, 6, 7),
		CheckOut:   day(2024, 6, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(5000), res.Booking.TotalPayment)
}

func TestSaveBookingOverrideTotal(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)
	override := money.FromRupees(4200)

	res, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:        "v-1",
		ClientName:     "Meera",
		CheckIn:        day(2024, 6, 3),
		CheckOut:       day(2024, 6, 10),
		OverrideTotal:  &override,
		AdvancePayment: money.FromRupees(200),
	})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(4200), res.Booking.TotalPayment)
	assert.Equal(t, money.FromRupees(4000), res.Booking.PendingPayment)
}

func TestSaveBookingValidationFailures(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 4)

	base := SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 3),
		CheckOut:   day(2024, 6, 6),
	}

	t.Run("same day range", func(t *testing.T) {
		cmd := base
		cmd.CheckOut = cmd.CheckIn
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainbooking.ErrInvalidDateRange)
	})

	t.Run("guest count over capacity", func(t *testing.T) {
		cmd := base
		cmd.Guests = 5
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainbooking.ErrGuestCountExceeded)
	})

	t.Run("zero guests means not recorded", func(t *testing.T) {
		cmd := base
		cmd.Guests = 0
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.NoError(t, err)
	})

	t.Run("advance exceeds total", func(t *testing.T) {
		cmd := base
		cmd.CheckIn = day(2024, 7, 1)
		cmd.CheckOut = day(2024, 7, 4)
		cmd.AdvancePayment = money.FromRupees(5000)
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainbooking.ErrAdvanceExceedsTotal)
	})

	t.Run("unknown villa", func(t *testing.T) {
		cmd := base
		cmd.VillaID = "missing"
		_, err := f.handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domainvilla.ErrNotFound)
	})
}

func TestSaveBookingUnavailable(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	first, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 1),
		CheckOut:   day(2024, 6, 5),
	})
	require.NoError(t, err)

	_, err = f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Ravi",
		CheckIn:    day(2024, 6, 4),
		CheckOut:   day(2024, 6, 8),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainbooking.ErrVillaUnavailable)

	var unavailable *UnavailableError
	require.True(t, errors.As(err, &unavailable))
	require.Len(t, unavailable.Conflicts, 1)
	assert.Equal(t, domainbooking.BookingID(first.Booking.ID), unavailable.Conflicts[0].ID)
	assert.Equal(t, "Asha", unavailable.Conflicts[0].ClientName)

	// Touching range starting on the checkout day is fine.
	_, err = f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Ravi",
		CheckIn:    day(2024, 6, 5),
		CheckOut:   day(2024, 6, 8),
	})
	assert.NoError(t, err)
}

func TestSaveBookingPaymentValidatedBeforeAvailability(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	_, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 1),
		CheckOut:   day(2024, 6, 5),
	})
	require.NoError(t, err)

	// Overlapping range AND advance above total: the payment problem
	// is reported, not the conflict.
	_, err = f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:        "v-1",
		ClientName:     "Ravi",
		CheckIn:        day(2024, 6, 4),
		CheckOut:       day(2024, 6, 8),
		AdvancePayment: money.FromRupees(50000),
	})
	assert.ErrorIs(t, err, domainbooking.ErrAdvanceExceedsTotal)
	assert.NotErrorIs(t, err, domainbooking.ErrVillaUnavailable)
}

func TestSaveBookingUpdateExcludesSelf(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	created, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 1),
		CheckOut:   day(2024, 6, 5),
	})
	require.NoError(t, err)

	// Shift the same stay by one day; its own stored row must not block it.
	updated, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		BookingID:  created.Booking.ID,
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 2),
		CheckOut:   day(2024, 6, 6),
		Status:     "booked",
	})
	require.NoError(t, err)
	assert.False(t, updated.Created)
	assert.Equal(t, created.Booking.ID, updated.Booking.ID)
	assert.Equal(t, "2024-06-02", updated.Booking.CheckIn)
}

func TestSaveBookingUpdateRepricesAgainstCurrentVilla(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	created, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 3),
		CheckOut:   day(2024, 6, 6),
	})
	require.NoError(t, err)
	require.Equal(t, money.FromRupees(3000), created.Booking.TotalPayment)

	// Raise the base price, then save the booking again without changes.
	v, err := f.villas.ByID(context.Background(), "v-1")
	require.NoError(t, err)
	v.Pricing.BasePrice = money.FromRupees(1500)
	require.NoError(t, f.villas.Save(context.Background(), v))

	updated, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		BookingID:  created.Booking.ID,
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 3),
		CheckOut:   day(2024, 6, 6),
	})
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(4500), updated.Booking.TotalPayment)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	f.addVilla(t, "v-1", 6)

	created, err := f.handler.Handle(context.Background(), SaveBookingCommand{
		VillaID:    "v-1",
		ClientName: "Asha",
		CheckIn:    day(2024, 6, 1),
		CheckOut:   day(2024, 6, 5),
	})
	require.NoError(t, err)

	del := &DeleteBookingHandler{UoWFactory: f.factory, Outbox: f.box}
	_, err = del.Handle(context.Background(), DeleteBookingCommand{BookingID: created.Booking.ID})
	require.NoError(t, err)

	_, err = f.bookings.ByID(context.Background(), domainbooking.BookingID(created.Booking.ID))
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)

	_, err = del.Handle(context.Background(), DeleteBookingCommand{BookingID: created.Booking.ID})
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)
}
