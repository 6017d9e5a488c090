package specialday

import (
	"context"
	"time"

	"github.com/google/uuid"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainvilla "villadesk/internal/domain/villa"
)

// SaveCommand creates or updates a global special-day marker. These are
// calendar annotations only; nightly pricing comes from per-villa rules.
type SaveCommand struct {
	ID    string
	Name  string
	Day   int
	Month int
	Year  int
}

func (c SaveCommand) Key() string { return "specialday.save" }

type SaveHandler struct {
	UoWFactory uow.Factory
	Now        func() time.Time
}

func (h *SaveHandler) Handle(ctx context.Context, cmd SaveCommand) (dto.SpecialDayDTO, error) {
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.SpecialDayDTO{}, err
	}
	defer rollback()

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	id := cmd.ID
	if id == "" {
		id = uuid.NewString()
	}
	day, err := domainvilla.NewGlobalSpecialDay(id, cmd.Name, cmd.Day, time.Month(cmd.Month), cmd.Year, now)
	if err != nil {
		return dto.SpecialDayDTO{}, err
	}
	if cmd.ID != "" {
		existing, err := unit.SpecialDays().ByID(ctx, cmd.ID)
		if err != nil {
			return dto.SpecialDayDTO{}, err
		}
		day.CreatedAt = existing.CreatedAt
	}
	if err := unit.SpecialDays().Save(ctx, day); err != nil {
		return dto.SpecialDayDTO{}, err
	}
	if err := commit(); err != nil {
		return dto.SpecialDayDTO{}, err
	}
	return dto.MapSpecialDay(day), nil
}

var _ commands.Handler[SaveCommand, dto.SpecialDayDTO] = (*SaveHandler)(nil)

type DeleteCommand struct {
	ID string
}

func (c DeleteCommand) Key() string { return "specialday.delete" }

type DeleteHandler struct {
	UoWFactory uow.Factory
}

func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) (struct{}, error) {
	var zero struct{}
	unit, ctx, commit, rollback, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	defer rollback()
	if _, err := unit.SpecialDays().ByID(ctx, cmd.ID); err != nil {
		return zero, err
	}
	if err := unit.SpecialDays().Delete(ctx, cmd.ID); err != nil {
		return zero, err
	}
	if err := commit(); err != nil {
		return zero, err
	}
	return zero, nil
}

var _ commands.Handler[DeleteCommand, struct{}] = (*DeleteHandler)(nil)

type ListQuery struct{}

func (q ListQuery) Key() string { return "specialday.list" }

type ListHandler struct {
	UoWFactory uow.Factory
}

func (h *ListHandler) Handle(ctx context.Context, _ ListQuery) ([]dto.SpecialDayDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	days, err := unit.SpecialDays().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpecialDayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.MapSpecialDay(d))
	}
	return out, nil
}

var _ queries.Handler[ListQuery, []dto.SpecialDayDTO] = (*ListHandler)(nil)
