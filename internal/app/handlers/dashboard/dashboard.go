package dashboard

import (
	"context"
	"sort"
	"time"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

// StatsQuery produces the overview numbers for the admin landing page.
// Now lets tests pin the clock; zero means the current time.
type StatsQuery struct {
	Now time.Time
}

func (q StatsQuery) Key() string { return "dashboard.stats" }

type StatsHandler struct {
	UoWFactory uow.Factory
}

func (h *StatsHandler) Handle(ctx context.Context, q StatsQuery) (dto.DashboardStatsDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.DashboardStatsDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := daterange.Date(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekEnd := today.AddDate(0, 0, 7)

	villas, err := unit.Villas().List(ctx, domainvilla.ListFilter{})
	if err != nil {
		return dto.DashboardStatsDTO{}, err
	}
	stats := dto.DashboardStatsDTO{TotalVillas: len(villas)}
	for _, v := range villas {
		if v.IsActive() {
			stats.ActiveVillas++
		} else {
			stats.MaintenanceVillas++
		}
	}

	bookings, err := unit.Bookings().List(ctx, domainbooking.ListFilter{Status: domainbooking.StatusBooked})
	if err != nil {
		return dto.DashboardStatsDTO{}, err
	}
	for _, b := range bookings {
		if b.Range.CheckIn.Equal(today) {
			stats.TodayCheckIns++
		}
		if b.Range.CheckOut.Equal(today) {
			stats.TodayCheckOuts++
		}
		if b.Range.ContainsDate(today) {
			stats.CurrentlyBooked++
		}
		if b.Range.CheckIn.After(today) && !b.Range.CheckIn.After(weekEnd) {
			stats.UpcomingBookings7d++
		}
		if !b.Range.CheckIn.Before(monthStart) && b.Range.CheckIn.Before(monthStart.AddDate(0, 1, 0)) {
			stats.BookingsThisMonth++
			stats.RevenueThisMonth = stats.RevenueThisMonth.Add(b.TotalPayment)
			stats.PendingThisMonth = stats.PendingThisMonth.Add(b.PendingPayment())
		}
	}
	return stats, nil
}

var _ queries.Handler[StatsQuery, dto.DashboardStatsDTO] = (*StatsHandler)(nil)

// TodayActivityQuery lists the booked stays arriving and departing on
// the reference day. Now zero means the current time.
type TodayActivityQuery struct {
	Now time.Time
}

func (q TodayActivityQuery) Key() string { return "dashboard.today_activity" }

type TodayActivityHandler struct {
	UoWFactory uow.Factory
}

func (h *TodayActivityHandler) Handle(ctx context.Context, q TodayActivityQuery) (dto.TodayActivityDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.TodayActivityDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := daterange.Date(now)

	bookings, err := unit.Bookings().List(ctx, domainbooking.ListFilter{Status: domainbooking.StatusBooked})
	if err != nil {
		return dto.TodayActivityDTO{}, err
	}
	activity := dto.TodayActivityDTO{
		CheckIns:  []dto.TodayEntryDTO{},
		CheckOuts: []dto.TodayEntryDTO{},
	}
	villaNames := map[domainvilla.VillaID]string{}
	for _, b := range bookings {
		arriving := b.Range.CheckIn.Equal(today)
		departing := b.Range.CheckOut.Equal(today)
		if !arriving && !departing {
			continue
		}
		name, ok := villaNames[b.VillaID]
		if !ok {
			if v, err := unit.Villas().ByID(ctx, b.VillaID); err == nil {
				name = v.Name
			}
			villaNames[b.VillaID] = name
		}
		entry := dto.TodayEntryDTO{
			ID:             string(b.ID),
			VillaID:        string(b.VillaID),
			VillaName:      name,
			ClientName:     b.ClientName,
			ClientPhone:    b.ClientPhone,
			NumberOfGuests: b.Guests,
		}
		if arriving {
			activity.CheckIns = append(activity.CheckIns, entry)
		}
		if departing {
			activity.CheckOuts = append(activity.CheckOuts, entry)
		}
	}
	return activity, nil
}

var _ queries.Handler[TodayActivityQuery, dto.TodayActivityDTO] = (*TodayActivityHandler)(nil)

// RecentBookingsQuery returns the latest bookings by creation time.
type RecentBookingsQuery struct {
	Limit int
}

func (q RecentBookingsQuery) Key() string { return "dashboard.recent_bookings" }

type RecentBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *RecentBookingsHandler) Handle(ctx context.Context, q RecentBookingsQuery) (dto.BookingCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	bookings, err := unit.Bookings().List(ctx, domainbooking.ListFilter{})
	if err != nil {
		return dto.BookingCollection{}, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	limit := q.Limit
	if limit <= 0 {
		limit = 5
	}
	if len(bookings) > limit {
		bookings = bookings[:limit]
	}
	out := dto.BookingCollection{Items: make([]dto.BookingDTO, 0, len(bookings))}
	for _, b := range bookings {
		v, err := unit.Villas().ByID(ctx, b.VillaID)
		if err != nil {
			v = nil
		}
		out.Items = append(out.Items, dto.MapBooking(b, v))
	}
	return out, nil
}

var _ queries.Handler[RecentBookingsQuery, dto.BookingCollection] = (*RecentBookingsHandler)(nil)

// RevenueChartQuery buckets booked revenue by check-in month over the
// trailing Months window (default six), oldest bucket first.
type RevenueChartQuery struct {
	Months int
	Now    time.Time
}

func (q RevenueChartQuery) Key() string { return "dashboard.revenue_chart" }

type RevenueChartHandler struct {
	UoWFactory uow.Factory
}

func (h *RevenueChartHandler) Handle(ctx context.Context, q RevenueChartQuery) (dto.RevenueChartDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RevenueChartDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	months := q.Months
	if months <= 0 {
		months = 6
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	bookings, err := unit.Bookings().List(ctx, domainbooking.ListFilter{
		Status:       domainbooking.StatusBooked,
		CheckInAfter: first,
	})
	if err != nil {
		return dto.RevenueChartDTO{}, err
	}

	type bucket struct {
		bookings int
		revenue  money.Money
	}
	buckets := make(map[string]*bucket, months)
	chart := dto.RevenueChartDTO{Points: make([]dto.RevenuePointDTO, 0, months)}
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		buckets[key] = &bucket{}
		chart.Points = append(chart.Points, dto.RevenuePointDTO{Month: key})
	}
	for _, b := range bookings {
		key := b.Range.CheckIn.Format("2006-01")
		if bk, ok := buckets[key]; ok {
			bk.bookings++
			bk.revenue = bk.revenue.Add(b.TotalPayment)
		}
	}
	for i := range chart.Points {
		bk := buckets[chart.Points[i].Month]
		chart.Points[i].Bookings = bk.bookings
		chart.Points[i].Revenue = bk.revenue
	}
	return chart, nil
}

var _ queries.Handler[RevenueChartQuery, dto.RevenueChartDTO] = (*RevenueChartHandler)(nil)

// VillaPerformanceQuery aggregates bookings, nights, and revenue per
// villa, highest revenue first.
type VillaPerformanceQuery struct{}

func (q VillaPerformanceQuery) Key() string { return "dashboard.villa_performance" }

type VillaPerformanceHandler struct {
	UoWFactory uow.Factory
}

func (h *VillaPerformanceHandler) Handle(ctx context.Context, _ VillaPerformanceQuery) ([]dto.VillaPerformanceDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	villas, err := unit.Villas().List(ctx, domainvilla.ListFilter{})
	if err != nil {
		return nil, err
	}
	bookings, err := unit.Bookings().List(ctx, domainbooking.ListFilter{Status: domainbooking.StatusBooked})
	if err != nil {
		return nil, err
	}

	perf := make(map[domainvilla.VillaID]*dto.VillaPerformanceDTO, len(villas))
	out := make([]dto.VillaPerformanceDTO, 0, len(villas))
	for _, v := range villas {
		perf[v.ID] = &dto.VillaPerformanceDTO{VillaID: string(v.ID), Name: v.Name}
	}
	for _, b := range bookings {
		p, ok := perf[b.VillaID]
		if !ok {
			continue
		}
		p.Bookings++
		p.Nights += b.Nights()
		p.Revenue = p.Revenue.Add(b.TotalPayment)
	}
	for _, v := range villas {
		out = append(out, *perf[v.ID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out, nil
}

var _ queries.Handler[VillaPerformanceQuery, []dto.VillaPerformanceDTO] = (*VillaPerformanceHandler)(nil)
