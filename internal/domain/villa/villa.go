package villa

import (
	"context"
	"errors"
	"strings"
	"time"

	"villadesk/internal/domain/shared/money"
)

var (
	ErrNameRequired   = errors.New("villa: name required")
	ErrNameTaken      = errors.New("villa: name already in use")
	ErrInvalidGuests  = errors.New("villa: max guests must be positive")
	ErrNegativePrice  = errors.New("villa: nightly price cannot be negative")
	ErrInvalidStatus  = errors.New("villa: invalid status")
	ErrNotFound       = errors.New("villa: not found")
	ErrHasBookings    = errors.New("villa: bookings reference this villa")
	ErrInvalidOrder   = errors.New("villa: display order cannot be negative")
	ErrInvalidWeekend = errors.New("villa: weekend day index out of range")
)

type VillaID string

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
)

// PricingConfig is everything the pricing resolver needs to price one
// night. WeekendPrice nil means the weekend tier is disabled; a zero
// amount is a real (free-night) price.
type PricingConfig struct {
	BasePrice    money.Money
	WeekendPrice *money.Money
	// WeekendDays holds weekday indices, 0=Monday .. 6=Sunday.
	WeekendDays  []int
	SpecialRules []SpecialRule
}

// SpecialRule is a date-scoped nightly price override. Start and End are
// both inclusive calendar dates.
type SpecialRule struct {
	Start time.Time
	End   time.Time
	Price money.Money
}

// Matches reports whether date falls inside the rule's inclusive window.
func (r SpecialRule) Matches(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// WeekdayIndex converts a calendar date to the stored weekend convention,
// 0=Monday .. 6=Sunday.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

type Villa struct {
	ID          VillaID
	Name        string
	Location    string
	MaxGuests   int
	Status      Status
	Description string
	ImageURL    string
	Amenities   []string
	// Order is a dense manual list position; 0 means unassigned.
	Order     int
	Pricing   PricingConfig
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type CreateParams struct {
	ID          VillaID
	Name        string
	Location    string
	MaxGuests   int
	Status      Status
	Description string
	ImageURL    string
	Amenities   []string
	Order       int
	Pricing     PricingConfig
	CreatedAt   time.Time
}

func New(params CreateParams) (*Villa, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if params.MaxGuests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.Order < 0 {
		return nil, ErrInvalidOrder
	}
	status := params.Status
	if status == "" {
		status = StatusActive
	}
	if status != StatusActive && status != StatusMaintenance {
		return nil, ErrInvalidStatus
	}
	if err := validatePricing(params.Pricing); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	return &Villa{
		ID:          params.ID,
		Name:        name,
		Location:    strings.TrimSpace(params.Location),
		MaxGuests:   params.MaxGuests,
		Status:      status,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		Amenities:   append([]string(nil), params.Amenities...),
		Order:       params.Order,
		Pricing:     params.Pricing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (v *Villa) IsActive() bool {
	return v.Status == StatusActive
}

func validatePricing(cfg PricingConfig) error {
	if cfg.BasePrice.IsNegative() {
		return ErrNegativePrice
	}
	if cfg.WeekendPrice != nil && cfg.WeekendPrice.IsNegative() {
		return ErrNegativePrice
	}
	for _, day := range cfg.WeekendDays {
		if day < 0 || day > 6 {
			return ErrInvalidWeekend
		}
	}
	return nil
}

// ListFilter narrows villa listings.
type ListFilter struct {
	Status Status
}

type Repository interface {
	ByID(ctx context.Context, id VillaID) (*Villa, error)
	ByName(ctx context.Context, name string) (*Villa, error)
	Save(ctx context.Context, v *Villa) error
	Delete(ctx context.Context, id VillaID) error
	List(ctx context.Context, filter ListFilter) ([]*Villa, error)
	// ShiftOrders adds delta to the display order of every villa whose
	// non-zero order lies in [from, to). to == 0 means no upper bound.
	ShiftOrders(ctx context.Context, from, to, delta int) error
}
