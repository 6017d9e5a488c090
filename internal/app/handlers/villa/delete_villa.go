package villa

import (
	"context"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainvilla "villadesk/internal/domain/villa"
)

type DeleteVillaCommand struct {
	VillaID string
}

func (c DeleteVillaCommand) Key() string { return "villa.delete" }

type DeleteVillaHandler struct {
	UoWFactory uow.Factory
}

// Handle refuses to delete a villa that bookings still reference, then
// closes the display-order gap the villa leaves behind.
func (h *DeleteVillaHandler) Handle(ctx context.Context, cmd DeleteVillaCommand) (struct{}, error) {
	var zero struct{}
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	defer rollback()

	v, err := unit.Villas().ByID(ctx, domainvilla.VillaID(cmd.VillaID))
	if err != nil {
		return zero, err
	}
	count, err := unit.Bookings().CountByVilla(ctx, v.ID)
	if err != nil {
		return zero, err
	}
	if count > 0 {
		return zero, domainvilla.ErrHasBookings
	}
	if err := unit.Villas().Delete(ctx, v.ID); err != nil {
		return zero, err
	}
	if v.Order > 0 {
		if err := unit.Villas().ShiftOrders(ctx, v.Order+1, 0, -1); err != nil {
			return zero, err
		}
	}
	if err := commit(); err != nil {
		return zero, err
	}
	return zero, nil
}

var _ commands.Handler[DeleteVillaCommand, struct{}] = (*DeleteVillaHandler)(nil)
