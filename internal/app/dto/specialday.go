package dto

import domainvilla "villadesk/internal/domain/villa"

type SpecialDayDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year,omitempty"`
	Recurring bool   `json:"recurring"`
}

func MapSpecialDay(d *domainvilla.GlobalSpecialDay) SpecialDayDTO {
	return SpecialDayDTO{
		ID:        d.ID,
		Name:      d.Name,
		Day:       d.Day,
		Month:     int(d.Month),
		Year:      d.Year,
		Recurring: d.Year == 0,
	}
}
