package booking

import (
	"context"
	"time"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainvilla "villadesk/internal/domain/villa"
)

// CalendarQuery returns every booking touching the [Start, End] window,
// one entry per booking, for the month-grid view.
type CalendarQuery struct {
	Start   time.Time
	End     time.Time
	VillaID string
}

func (q CalendarQuery) Key() string { return "booking.calendar" }

type CalendarHandler struct {
	UoWFactory uow.Factory
}

func (h *CalendarHandler) Handle(ctx context.Context, q CalendarQuery) ([]dto.CalendarEntryDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Bookings().InRange(ctx, q.Start, q.End, domainvilla.VillaID(q.VillaID))
	if err != nil {
		return nil, err
	}
	villas := villaCache{unit: unit}
	out := make([]dto.CalendarEntryDTO, 0, len(items))
	for _, b := range items {
		name := ""
		if v, err := villas.get(ctx, b.VillaID); err != nil {
			return nil, err
		} else if v != nil {
			name = v.Name
		}
		out = append(out, dto.CalendarEntryDTO{
			ID:         string(b.ID),
			VillaID:    string(b.VillaID),
			VillaName:  name,
			ClientName: b.ClientName,
			CheckIn:    b.Range.CheckIn.Format("2006-01-02"),
			CheckOut:   b.Range.CheckOut.Format("2006-01-02"),
			Status:     string(b.Status),
		})
	}
	return out, nil
}

var _ queries.Handler[CalendarQuery, []dto.CalendarEntryDTO] = (*CalendarHandler)(nil)
