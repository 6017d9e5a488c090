package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
	"villadesk/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedVilla(t *testing.T, villas *memory.VillaRepository, id, name string) {
	t.Helper()
	v, err := domainvilla.New(domainvilla.CreateParams{
		ID:        domainvilla.VillaID(id),
		Name:      name,
		MaxGuests: 6,
		Pricing:   domainvilla.PricingConfig{BasePrice: money.FromRupees(1000)},
		CreatedAt: day(2024, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, villas.Save(context.Background(), v))
}

func seedBooking(t *testing.T, bookings *memory.BookingRepository, id, villaID, client string, status domainbooking.Status, in, out time.Time) {
	t.Helper()
	dr, err := daterange.New(in, out)
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:          domainbooking.BookingID(id),
		VillaID:     domainvilla.VillaID(villaID),
		ClientName:  client,
		ClientPhone: "9876543210",
		Range:       dr,
		Status:      status,
		Guests:      2,
		CreatedAt:   day(2024, 5, 1),
	})
	require.NoError(t, err)
	require.NoError(t, bookings.Save(context.Background(), b))
}

func TestTodayActivity(t *testing.T) {
	villas := memory.NewVillaRepository()
	bookings := memory.NewBookingRepository()
	factory := memory.Factory{
		VillaRepo:      villas,
		BookingRepo:    bookings,
		SpecialDayRepo: memory.NewSpecialDayRepository(),
	}
	seedVilla(t, villas, "v-1", "Sunset Ridge")
	seedVilla(t, villas, "v-2", "Palm Grove")

	today := day(2024, 6, 10)
	seedBooking(t, bookings, "b-arrive", "v-1", "Asha", domainbooking.StatusBooked, today, day(2024, 6, 14))
	seedBooking(t, bookings, "b-depart", "v-2", "Ravi", domainbooking.StatusBooked, day(2024, 6, 7), today)
	seedBooking(t, bookings, "b-midstay", "v-1", "Meera", domainbooking.StatusBooked, day(2024, 6, 8), day(2024, 6, 12))
	seedBooking(t, bookings, "b-blocked", "v-2", "Maintenance", domainbooking.StatusBlocked, today, day(2024, 6, 11))

	h := &TodayActivityHandler{UoWFactory: factory}
	res, err := h.Handle(context.Background(), TodayActivityQuery{Now: today.Add(9 * time.Hour)})
	require.NoError(t, err)

	require.Len(t, res.CheckIns, 1)
	assert.Equal(t, "b-arrive", res.CheckIns[0].ID)
	assert.Equal(t, "Sunset Ridge", res.CheckIns[0].VillaName)
	assert.Equal(t, "Asha", res.CheckIns[0].ClientName)

	require.Len(t, res.CheckOuts, 1)
	assert.Equal(t, "b-depart", res.CheckOuts[0].ID)
	assert.Equal(t, "Palm Grove", res.CheckOuts[0].VillaName)
}

func TestTodayActivityEmptyDay(t *testing.T) {
	factory := memory.Factory{
		VillaRepo:      memory.NewVillaRepository(),
		BookingRepo:    memory.NewBookingRepository(),
		SpecialDayRepo: memory.NewSpecialDayRepository(),
	}
	h := &TodayActivityHandler{UoWFactory: factory}
	res, err := h.Handle(context.Background(), TodayActivityQuery{Now: day(2024, 6, 10)})
	require.NoError(t, err)
	assert.Empty(t, res.CheckIns)
	assert.Empty(t, res.CheckOuts)
	assert.NotNil(t, res.CheckIns, "empty lists serialize as [] not null")
	assert.NotNil(t, res.CheckOuts)
}
