package villa

import (
	"context"
	"log/slog"
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

type fixture struct {
	factory  memory.Factory
	villas   *memory.VillaRepository
	bookings *memory.BookingRepository
	save     *SaveVillaHandler
	del      *DeleteVillaHandler
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
	return &fixture{
		factory:  factory,
		villas:   villas,
		bookings: bookings,
		save: &SaveVillaHandler{
			UoWFactory: factory,
			Log:        slog.New(slog.DiscardHandler),
			Now:        func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
		},
		del: &DeleteVillaHandler{UoWFactory: factory},
	}
}

func (f *fixture) create(t *testing.T, name string, order int) string {
	t.Helper()
	res, err := f.save.Handle(context.Background(), SaveVillaCommand{
		Name:      name,
		MaxGuests: 6,
		Order:     order,
		BasePrice: money.FromRupees(1000),
	})
	require.NoError(t, err)
	require.True(t, res.Created)
	return res.Villa.ID
}

func (f *fixture) orderOf(t *testing.T, id string) int {
	t.Helper()
	v, err := f.villas.ByID(context.Background(), domainvilla.VillaID(id))
	require.NoError(t, err)
	return v.Order
}

func TestSaveVillaCreate(t *testing.T) {
	f := newFixture(t)

	res, err := f.save.Handle(context.Background(), SaveVillaCommand{
		Name:      "Sunset Ridge",
		Location:  "Lonavala",
		MaxGuests: 8,
		Status:    "active",
		Order:     1,
		BasePrice: money.FromRupees(2500),
		SpecialPrices: []map[string]any{
			{"start_date": "2024-12-24", "end_date": "2024-12-26", "price": "5000"},
			{"start_date": "bad", "end_date": "2024-12-26", "price": "1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunset Ridge", res.Villa.Name)
	assert.Equal(t, money.FromRupees(2500), res.Villa.PricePerNight)
	require.Len(t, res.Villa.SpecialPrices, 1, "malformed rule skipped")
	assert.Equal(t, "2024-12-24", res.Villa.SpecialPrices[0].StartDate)
}

func TestSaveVillaNameUniqueness(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "Sunset Ridge", 0)

	_, err := f.save.Handle(context.Background(), SaveVillaCommand{
		Name:      "sunset ridge",
		MaxGuests: 4,
		BasePrice: money.FromRupees(900),
	})
	assert.ErrorIs(t, err, domainvilla.ErrNameTaken)

	// Updating the same villa keeps its own name.
	res, err := f.save.Handle(context.Background(), SaveVillaCommand{
		VillaID:   id,
		Name:      "Sunset Ridge",
		MaxGuests: 10,
		BasePrice: money.FromRupees(1200),
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 10, res.Villa.MaxGuests)
}

func TestSaveVillaValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		cmd  SaveVillaCommand
		want error
	}{
		{"blank name", SaveVillaCommand{Name: "  ", MaxGuests: 4, BasePrice: money.FromRupees(100)}, domainvilla.ErrNameRequired},
		{"zero guests", SaveVillaCommand{Name: "A", MaxGuests: 0, BasePrice: money.FromRupees(100)}, domainvilla.ErrInvalidGuests},
		{"negative price", SaveVillaCommand{Name: "A", MaxGuests: 4, BasePrice: money.FromPaise(-1)}, domainvilla.ErrNegativePrice},
		{"negative order", SaveVillaCommand{Name: "A", MaxGuests: 4, Order: -1, BasePrice: money.FromRupees(100)}, domainvilla.ErrInvalidOrder},
		{"bad status", SaveVillaCommand{Name: "A", MaxGuests: 4, Status: "retired", BasePrice: money.FromRupees(100)}, domainvilla.ErrInvalidStatus},
		{"weekend day out of range", SaveVillaCommand{Name: "A", MaxGuests: 4, WeekendDays: []int{7}, BasePrice: money.FromRupees(100)}, domainvilla.ErrInvalidWeekend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.save.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVillaReordering(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A", 1)
	b := f.create(t, "B", 2)
	c := f.create(t, "C", 3)

	t.Run("insert shifts later villas up", func(t *testing.T) {
		d := f.create(t, "D", 2)
		assert.Equal(t, 1, f.orderOf(t, a))
		assert.Equal(t, 2, f.orderOf(t, d))
		assert.Equal(t, 3, f.orderOf(t, b))
		assert.Equal(t, 4, f.orderOf(t, c))

		// Put things back for the following cases.
		_, err := f.del.Handle(context.Background(), DeleteVillaCommand{VillaID: d})
		require.NoError(t, err)
	})

	t.Run("move toward front", func(t *testing.T) {
		// C: 3 -> 1; A and B shift up by one.
		_, err := f.save.Handle(context.Background(), SaveVillaCommand{
			VillaID: c, Name: "C", MaxGuests: 6, Order: 1, BasePrice: money.FromRupees(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.orderOf(t, c))
		assert.Equal(t, 2, f.orderOf(t, a))
		assert.Equal(t, 3, f.orderOf(t, b))
	})

	t.Run("move toward back", func(t *testing.T) {
		// C: 1 -> 3; A and B shift down by one.
		_, err := f.save.Handle(context.Background(), SaveVillaCommand{
			VillaID: c, Name: "C", MaxGuests: 6, Order: 3, BasePrice: money.FromRupees(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.orderOf(t, a))
		assert.Equal(t, 2, f.orderOf(t, b))
		assert.Equal(t, 3, f.orderOf(t, c))
	})

	t.Run("leaving the ordering closes the gap", func(t *testing.T) {
		// B: 2 -> unassigned; C moves up into the gap.
		_, err := f.save.Handle(context.Background(), SaveVillaCommand{
			VillaID: b, Name: "B", MaxGuests: 6, Order: 0, BasePrice: money.FromRupees(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.orderOf(t, a))
		assert.Equal(t, 0, f.orderOf(t, b))
		assert.Equal(t, 2, f.orderOf(t, c))
	})

	t.Run("delete closes the gap", func(t *testing.T) {
		_, err := f.del.Handle(context.Background(), DeleteVillaCommand{VillaID: a})
		require.NoError(t, err)
		assert.Equal(t, 1, f.orderOf(t, c))
	})
}

func TestDeleteVillaWithBookingsRefused(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "Sunset Ridge", 0)

	dr, err := daterange.New(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:         "b-1",
		VillaID:    domainvilla.VillaID(id),
		ClientName: "Asha",
		Range:      dr,
		CreatedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(context.Background(), b))

	_, err = f.del.Handle(context.Background(), DeleteVillaCommand{VillaID: id})
	assert.ErrorIs(t, err, domainvilla.ErrHasBookings)

	require.NoError(t, f.bookings.Delete(context.Background(), "b-1"))
	_, err = f.del.Handle(context.Background(), DeleteVillaCommand{VillaID: id})
	assert.NoError(t, err)
}

func TestListVillasDisplayOrder(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Zinnia", 0)
	f.create(t, "Aster", 0)
	b := f.create(t, "Banyan", 2)
	m := f.create(t, "Mango", 1)

	list := &ListVillasHandler{UoWFactory: f.factory}
	res, err := list.Handle(context.Background(), ListVillasQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, m, res.Items[0].ID)
	assert.Equal(t, b, res.Items[1].ID)
	assert.Equal(t, "Aster", res.Items[2].Name, "unassigned sorted by name")
	assert.Equal(t, "Zinnia", res.Items[3].Name)
}
