package villa

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

// SaveVillaCommand covers create (empty VillaID) and update. Order 0
// leaves the villa out of the manual display ordering.
type SaveVillaCommand struct {
	VillaID      string
	Name         string
	Location     string
	MaxGuests    int
	Status       string
	Description  string
	ImageURL     string
	Amenities    []string
	Order        int
	BasePrice    money.Money
	WeekendPrice *money.Money
	WeekendDays  []int
	// SpecialPrices arrives as loosely typed rows; malformed rows are
	// skipped with a logged warning rather than failing the save.
	SpecialPrices []map[string]any
}

func (c SaveVillaCommand) Key() string { return "villa.save" }

type SaveVillaResult struct {
	Villa   dto.VillaDTO `json:"villa"`
	Created bool         `json:"created"`
}

type SaveVillaHandler struct {
	UoWFactory uow.Factory
	Log        *slog.Logger
	Now        func() time.Time
}

func (h *SaveVillaHandler) Handle(ctx context.Context, cmd SaveVillaCommand) (*SaveVillaResult, error) {
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer rollback()

	if cmd.Order < 0 {
		return nil, domainvilla.ErrInvalidOrder
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domainvilla.ErrNameRequired
	}
	if existing, err := unit.Villas().ByName(ctx, name); err == nil {
		if string(existing.ID) != cmd.VillaID {
			return nil, domainvilla.ErrNameTaken
		}
	} else if !errors.Is(err, domainvilla.ErrNotFound) {
		return nil, err
	}

	pricing := domainvilla.PricingConfig{
		BasePrice:    cmd.BasePrice,
		WeekendPrice: cmd.WeekendPrice,
		WeekendDays:  cmd.WeekendDays,
		SpecialRules: domainvilla.ParseSpecialPrices(cmd.SpecialPrices, h.Log),
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}

	var v *domainvilla.Villa
	created := cmd.VillaID == ""
	if created {
		if err := h.resequenceForInsert(ctx, unit, cmd.Order); err != nil {
			return nil, err
		}
		v, err = domainvilla.New(domainvilla.CreateParams{
			ID:          domainvilla.VillaID(uuid.NewString()),
			Name:        name,
			Location:    cmd.Location,
			MaxGuests:   cmd.MaxGuests,
			Status:      domainvilla.Status(cmd.Status),
			Description: cmd.Description,
			ImageURL:    cmd.ImageURL,
			Amenities:   cmd.Amenities,
			Order:       cmd.Order,
			Pricing:     pricing,
			CreatedAt:   now,
		})
		if err != nil {
			return nil, err
		}
	} else {
		v, err = unit.Villas().ByID(ctx, domainvilla.VillaID(cmd.VillaID))
		if err != nil {
			return nil, err
		}
		if err := h.resequenceForMove(ctx, unit, v.Order, cmd.Order); err != nil {
			return nil, err
		}
		if err := applyUpdate(v, cmd, name, pricing, now); err != nil {
			return nil, err
		}
	}

	if err := unit.Villas().Save(ctx, v); err != nil {
		return nil, err
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return &SaveVillaResult{Villa: dto.MapVilla(v), Created: created}, nil
}

func applyUpdate(v *domainvilla.Villa, cmd SaveVillaCommand, name string, pricing domainvilla.PricingConfig, now time.Time) error {
	if cmd.MaxGuests <= 0 {
		return domainvilla.ErrInvalidGuests
	}
	status := domainvilla.Status(cmd.Status)
	if status == "" {
		status = v.Status
	}
	if status != domainvilla.StatusActive && status != domainvilla.StatusMaintenance {
		return domainvilla.ErrInvalidStatus
	}
	if pricing.BasePrice.IsNegative() {
		return domainvilla.ErrNegativePrice
	}
	if pricing.WeekendPrice != nil && pricing.WeekendPrice.IsNegative() {
		return domainvilla.ErrNegativePrice
	}
	for _, day := range pricing.WeekendDays {
		if day < 0 || day > 6 {
			return domainvilla.ErrInvalidWeekend
		}
	}
	v.Name = name
	v.Location = strings.TrimSpace(cmd.Location)
	v.MaxGuests = cmd.MaxGuests
	v.Status = status
	v.Description = cmd.Description
	v.ImageURL = cmd.ImageURL
	v.Amenities = append([]string(nil), cmd.Amenities...)
	v.Order = cmd.Order
	v.Pricing = pricing
	v.UpdatedAt = now
	return nil
}

// resequenceForInsert makes room at the target position: every assigned
// order >= target moves up by one.
func (h *SaveVillaHandler) resequenceForInsert(ctx context.Context, unit uow.UnitOfWork, target int) error {
	if target == 0 {
		return nil
	}
	return unit.Villas().ShiftOrders(ctx, target, 0, 1)
}

// resequenceForMove keeps the ordering dense when a villa changes
// position. Moving toward the front shifts [new, old) up by one; moving
// toward the back shifts (old, new] down by one. Leaving the ordering
// (new == 0) closes the gap the villa vacated.
func (h *SaveVillaHandler) resequenceForMove(ctx context.Context, unit uow.UnitOfWork, old, target int) error {
	switch {
	case old == target:
		return nil
	case old == 0:
		return h.resequenceForInsert(ctx, unit, target)
	case target == 0:
		return unit.Villas().ShiftOrders(ctx, old+1, 0, -1)
	case target < old:
		return unit.Villas().ShiftOrders(ctx, target, old, 1)
	default:
		return unit.Villas().ShiftOrders(ctx, old+1, target+1, -1)
	}
}

var _ commands.Handler[SaveVillaCommand, *SaveVillaResult] = (*SaveVillaHandler)(nil)
