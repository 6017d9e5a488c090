package dto

import (
	domainpricing "villadesk/internal/domain/pricing"
	"villadesk/internal/domain/shared/money"
)

type NightDTO struct {
	Date  string      `json:"date"`
	Price money.Money `json:"price"`
	Type  string      `json:"type"`
}

type StayQuoteDTO struct {
	Total         money.Money `json:"total"`
	Advance       money.Money `json:"advance"`
	Pending       money.Money `json:"pending"`
	Nights        int         `json:"nights"`
	Overridden    bool        `json:"overridden"`
	Breakdown     []NightDTO  `json:"breakdown,omitempty"`
	BaseNights    int         `json:"base_nights"`
	WeekendNights int         `json:"weekend_nights"`
	SpecialNights int         `json:"special_nights"`
}

func MapStayQuote(q domainpricing.StayQuote) StayQuoteDTO {
	dto := StayQuoteDTO{
		Total:         q.Total,
		Advance:       q.Advance,
		Pending:       q.Pending,
		Nights:        q.Nights,
		Overridden:    q.Overridden,
		BaseNights:    q.BaseNights,
		WeekendNights: q.WeekendNights,
		SpecialNights: q.SpecialNights,
	}
	for _, night := range q.Breakdown {
		dto.Breakdown = append(dto.Breakdown, NightDTO{
			Date:  night.Date.Format(dateLayout),
			Price: night.Price,
			Type:  string(night.Kind),
		})
	}
	return dto
}
