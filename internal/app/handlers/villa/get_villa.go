package villa

import (
	"context"
	"sort"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainvilla "villadesk/internal/domain/villa"
)

type GetVillaQuery struct {
	VillaID string
}

func (q GetVillaQuery) Key() string { return "villa.get" }

type GetVillaHandler struct {
	UoWFactory uow.Factory
}

func (h *GetVillaHandler) Handle(ctx context.Context, q GetVillaQuery) (dto.VillaDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.VillaDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	v, err := unit.Villas().ByID(ctx, domainvilla.VillaID(q.VillaID))
	if err != nil {
		return dto.VillaDTO{}, err
	}
	return dto.MapVilla(v), nil
}

var _ queries.Handler[GetVillaQuery, dto.VillaDTO] = (*GetVillaHandler)(nil)

type ListVillasQuery struct {
	Status string
}

func (q ListVillasQuery) Key() string { return "villa.list" }

type ListVillasHandler struct {
	UoWFactory uow.Factory
}

// Handle lists villas ordered for display: assigned positions first in
// order, unassigned villas after them sorted by name.
func (h *ListVillasHandler) Handle(ctx context.Context, q ListVillasQuery) (dto.VillaCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.VillaCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Villas().List(ctx, domainvilla.ListFilter{Status: domainvilla.Status(q.Status)})
	if err != nil {
		return dto.VillaCollection{}, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
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
	out := dto.VillaCollection{Items: make([]dto.VillaDTO, 0, len(items))}
	for _, v := range items {
		out.Items = append(out.Items, dto.MapVilla(v))
	}
	return out, nil
}

var _ queries.Handler[ListVillasQuery, dto.VillaCollection] = (*ListVillasHandler)(nil)
