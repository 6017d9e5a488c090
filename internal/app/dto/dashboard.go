package dto

import "villadesk/internal/domain/shared/money"

type DashboardStatsDTO struct {
	TotalVillas          int         `json:"total_villas"`
	ActiveVillas         int         `json:"active_villas"`
	MaintenanceVillas    int         `json:"maintenance_villas"`
	TodayCheckIns        int         `json:"today_check_ins"`
	TodayCheckOuts       int         `json:"today_check_outs"`
	CurrentlyBooked      int         `json:"currently_booked"`
	UpcomingBookings7d   int         `json:"upcoming_bookings_7_days"`
	BookingsThisMonth    int         `json:"total_bookings_this_month"`
	RevenueThisMonth     money.Money `json:"revenue_this_month"`
	PendingThisMonth     money.Money `json:"pending_this_month"`
}

// TodayEntryDTO is one arriving or departing stay on the day board.
type TodayEntryDTO struct {
	ID             string `json:"id"`
	VillaID        string `json:"villa_id"`
	VillaName      string `json:"villa_name"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone,omitempty"`
	NumberOfGuests int    `json:"number_of_guests,omitempty"`
}

type TodayActivityDTO struct {
	CheckIns  []TodayEntryDTO `json:"check_ins"`
	CheckOuts []TodayEntryDTO `json:"check_outs"`
}

type RevenuePointDTO struct {
	Month    string      `json:"month"`
	Bookings int         `json:"bookings"`
	Revenue  money.Money `json:"revenue"`
}

type RevenueChartDTO struct {
	Points []RevenuePointDTO `json:"points"`
}

type VillaPerformanceDTO struct {
	VillaID  string      `json:"villa_id"`
	Name     string      `json:"name"`
	Bookings int         `json:"bookings"`
	Nights   int         `json:"nights"`
	Revenue  money.Money `json:"revenue"`
}
