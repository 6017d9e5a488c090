package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	domainvilla "villadesk/internal/domain/villa"
)

// VillaRepository stores villas in memory. Used in dev mode and tests.
type VillaRepository struct {
	mu     sync.RWMutex
	villas map[domainvilla.VillaID]*domainvilla.Villa
}

func NewVillaRepository() *VillaRepository {
	return &VillaRepository{villas: make(map[domainvilla.VillaID]*domainvilla.Villa)}
}

func (r *VillaRepository) ByID(ctx context.Context, id domainvilla.VillaID) (*domainvilla.Villa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.villas[id]; ok {
		return cloneVilla(v), nil
	}
	return nil, domainvilla.ErrNotFound
}

func (r *VillaRepository) ByName(ctx context.Context, name string) (*domainvilla.Villa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.villas {
		if strings.EqualFold(v.Name, name) {
			return cloneVilla(v), nil
		}
	}
	return nil, domainvilla.ErrNotFound
}

func (r *VillaRepository) Save(ctx context.Context, v *domainvilla.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.villas {
		if id != v.ID && strings.EqualFold(existing.Name, v.Name) {
			return domainvilla.ErrNameTaken
		}
	}
	v.Version++
	r.villas[v.ID] = cloneVilla(v)
	return nil
}

func (r *VillaRepository) Delete(ctx context.Context, id domainvilla.VillaID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.villas[id]; !ok {
		return domainvilla.ErrNotFound
	}
	delete(r.villas, id)
	return nil
}

func (r *VillaRepository) List(ctx context.Context, filter domainvilla.ListFilter) ([]*domainvilla.Villa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainvilla.Villa, 0, len(r.villas))
	for _, v := range r.villas {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, cloneVilla(v))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Order > 0 && b.Order > 0:
			return a.Order < b.Order
		case a.Order > 0:
			return true
		case b.Order > 0:
			return false
		default:
			return a.Name < b.Name
		}
	})
	return out, nil
}

func (r *VillaRepository) ShiftOrders(ctx context.Context, from, to, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.villas {
		if v.Order == 0 || v.Order < from {
			continue
		}
		if to > 0 && v.Order >= to {
			continue
		}
		v.Order += delta
	}
	return nil
}

func cloneVilla(v *domainvilla.Villa) *domainvilla.Villa {
	if v == nil {
		return nil
	}
	c := *v
	c.Amenities = append([]string(nil), v.Amenities...)
	c.Pricing.WeekendDays = append([]int(nil), v.Pricing.WeekendDays...)
	c.Pricing.SpecialRules = append([]domainvilla.SpecialRule(nil), v.Pricing.SpecialRules...)
	if v.Pricing.WeekendPrice != nil {
		price := *v.Pricing.WeekendPrice
		c.Pricing.WeekendPrice = &price
	}
	return &c
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, domainbooking.ErrNotFound
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domainbooking.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *BookingRepository) List(ctx context.Context, filter domainbooking.ListFilter) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*domainbooking.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if filter.VillaID != "" && b.VillaID != filter.VillaID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if !filter.CheckInAfter.IsZero() && b.Range.CheckIn.Before(filter.CheckInAfter) {
			continue
		}
		if !filter.CheckInBefore.IsZero() && b.Range.CheckIn.After(filter.CheckInBefore) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(b.ClientName), search) &&
			!strings.Contains(strings.ToLower(b.ClientPhone), search) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.CheckIn.After(out[j].Range.CheckIn)
	})
	return out, nil
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, villaID domainvilla.VillaID, dr daterange.DateRange, excludeID domainbooking.BookingID) ([]domainbooking.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainbooking.Summary
	for _, b := range r.bookings {
		if b.VillaID != villaID {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if !b.Range.Overlaps(dr) {
			continue
		}
		out = append(out, domainbooking.Summary{
			ID:         b.ID,
			VillaID:    b.VillaID,
			ClientName: b.ClientName,
			CheckIn:    b.Range.CheckIn,
			CheckOut:   b.Range.CheckOut,
			Status:     b.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckIn.Before(out[j].CheckIn)
	})
	return out, nil
}

func (r *BookingRepository) InRange(ctx context.Context, start, end time.Time, villaID domainvilla.VillaID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.bookings {
		if villaID != "" && b.VillaID != villaID {
			continue
		}
		if b.Range.CheckIn.After(end) || b.Range.CheckOut.Before(start) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.CheckIn.Before(out[j].Range.CheckIn)
	})
	return out, nil
}

func (r *BookingRepository) CountByVilla(ctx context.Context, villaID domainvilla.VillaID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, b := range r.bookings {
		if b.VillaID == villaID {
			count++
		}
	}
	return count, nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.ClearEvents()
	if b.OverrideTotal != nil {
		amount := *b.OverrideTotal
		c.OverrideTotal = &amount
	}
	return &c
}

// SpecialDayRepository stores global special days in memory.
type SpecialDayRepository struct {
	mu   sync.RWMutex
	days map[string]*domainvilla.GlobalSpecialDay
}

func NewSpecialDayRepository() *SpecialDayRepository {
	return &SpecialDayRepository{days: make(map[string]*domainvilla.GlobalSpecialDay)}
}

func (r *SpecialDayRepository) ByID(ctx context.Context, id string) (*domainvilla.GlobalSpecialDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.days[id]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, domainvilla.ErrSpecialDayNotFound
}

func (r *SpecialDayRepository) Save(ctx context.Context, day *domainvilla.GlobalSpecialDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *day
	r.days[day.ID] = &clone
	return nil
}

func (r *SpecialDayRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.days[id]; !ok {
		return domainvilla.ErrSpecialDayNotFound
	}
	delete(r.days, id)
	return nil
}

func (r *SpecialDayRepository) List(ctx context.Context) ([]*domainvilla.GlobalSpecialDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainvilla.GlobalSpecialDay, 0, len(r.days))
	for _, d := range r.days {
		clone := *d
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out, nil
}

var (
	_ domainvilla.Repository           = (*VillaRepository)(nil)
	_ domainbooking.Repository         = (*BookingRepository)(nil)
	_ domainvilla.SpecialDayRepository = (*SpecialDayRepository)(nil)
)
