package dto

import (
	"time"

	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

// SpecialPriceDTO is the typed wire form of one special-price rule.
type SpecialPriceDTO struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Price     money.Money `json:"price"`
}

type VillaDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Location      string            `json:"location"`
	MaxGuests     int               `json:"max_guests"`
	Status        string            `json:"status"`
	IsActive      bool              `json:"is_active"`
	Description   string            `json:"description,omitempty"`
	ImageURL      string            `json:"image,omitempty"`
	Amenities     []string          `json:"amenities,omitempty"`
	Order         int               `json:"order"`
	PricePerNight money.Money       `json:"price_per_night"`
	WeekendPrice  *money.Money      `json:"weekend_price,omitempty"`
	WeekendDays   []int             `json:"weekend_days,omitempty"`
	SpecialPrices []SpecialPriceDTO `json:"special_prices,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// VillaSummaryDTO is the trimmed projection embedded in booking payloads.
type VillaSummaryDTO struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Location      string      `json:"location"`
	MaxGuests     int         `json:"max_guests"`
	Status        string      `json:"status"`
	PricePerNight money.Money `json:"price_per_night"`
}

const dateLayout = "2006-01-02"

func MapVilla(v *domainvilla.Villa) VillaDTO {
	dto := VillaDTO{
		ID:            string(v.ID),
		Name:          v.Name,
		Location:      v.Location,
		MaxGuests:     v.MaxGuests,
		Status:        string(v.Status),
		IsActive:      v.IsActive(),
		Description:   v.Description,
		ImageURL:      v.ImageURL,
		Amenities:     v.Amenities,
		Order:         v.Order,
		PricePerNight: v.Pricing.BasePrice,
		WeekendPrice:  v.Pricing.WeekendPrice,
		WeekendDays:   v.Pricing.WeekendDays,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	for _, rule := range v.Pricing.SpecialRules {
		dto.SpecialPrices = append(dto.SpecialPrices, SpecialPriceDTO{
			StartDate: rule.Start.Format(dateLayout),
			EndDate:   rule.End.Format(dateLayout),
			Price:     rule.Price,
		})
	}
	return dto
}

func MapVillaSummary(v *domainvilla.Villa) VillaSummaryDTO {
	return VillaSummaryDTO{
		ID:            string(v.ID),
		Name:          v.Name,
		Location:      v.Location,
		MaxGuests:     v.MaxGuests,
		Status:        string(v.Status),
		PricePerNight: v.Pricing.BasePrice,
	}
}

type VillaCollection struct {
	Items []VillaDTO `json:"items"`
}
