package pricing

import (
	"context"
	"time"

	"villadesk/internal/app/dto"
	"villadesk/internal/app/queries"
	"villadesk/internal/app/support"
	"villadesk/internal/app/uow"
	domainbooking "villadesk/internal/domain/booking"
	domainpricing "villadesk/internal/domain/pricing"
	"villadesk/internal/domain/shared/daterange"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

// PreviewQuery prices a prospective stay without creating anything. It
// runs the same calculator the booking save pipeline uses, so the quoted
// figures match what a booking would be charged.
type PreviewQuery struct {
	VillaID       string
	CheckIn       time.Time
	CheckOut      time.Time
	OverrideTotal *money.Money
	Advance       money.Money
}

func (q PreviewQuery) Key() string { return "pricing.preview" }

type PreviewHandler struct {
	UoWFactory uow.Factory
}

func (h *PreviewHandler) Handle(ctx context.Context, q PreviewQuery) (dto.StayQuoteDTO, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.StayQuoteDTO{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	dr, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.StayQuoteDTO{}, domainbooking.ErrInvalidDateRange
	}
	v, err := unit.Villas().ByID(ctx, domainvilla.VillaID(q.VillaID))
	if err != nil {
		return dto.StayQuoteDTO{}, err
	}
	quote, err := domainpricing.ComputeStay(v.Pricing, dr, q.OverrideTotal, q.Advance)
	if err != nil {
		return dto.StayQuoteDTO{}, err
	}
	return dto.MapStayQuote(quote), nil
}

var _ queries.Handler[PreviewQuery, dto.StayQuoteDTO] = (*PreviewHandler)(nil)
