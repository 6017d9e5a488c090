package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/dto"
	bookingapp "villadesk/internal/app/handlers/booking"
	domainbooking "villadesk/internal/domain/booking"
	"villadesk/internal/domain/shared/money"
	domainvilla "villadesk/internal/domain/villa"
)

// respondDomainError maps domain failures onto HTTP statuses. The four
// request-scoped validation failures (bad range, guest overflow, advance
// over total, unavailable villa) all surface as client errors; the
// unavailable case additionally carries the conflicting bookings.
func respondDomainError(c *gin.Context, err error) {
	var unavailable *bookingapp.UnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusConflict, gin.H{
			"error":                err.Error(),
			"conflicting_bookings": dto.MapConflicts(unavailable.Conflicts),
		})
		return
	}
	switch {
	case errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainvilla.ErrNotFound),
		errors.Is(err, domainvilla.ErrSpecialDayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainvilla.ErrNameTaken),
		errors.Is(err, domainvilla.ErrHasBookings),
		errors.Is(err, domainbooking.ErrVillaUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrInvalidDateRange),
		errors.Is(err, domainbooking.ErrGuestCountExceeded),
		errors.Is(err, domainbooking.ErrAdvanceExceedsTotal),
		errors.Is(err, domainbooking.ErrClientNameRequired),
		errors.Is(err, domainbooking.ErrInvalidStatus),
		errors.Is(err, domainbooking.ErrNegativeAdvance),
		errors.Is(err, domainvilla.ErrNameRequired),
		errors.Is(err, domainvilla.ErrInvalidGuests),
		errors.Is(err, domainvilla.ErrNegativePrice),
		errors.Is(err, domainvilla.ErrInvalidStatus),
		errors.Is(err, domainvilla.ErrInvalidOrder),
		errors.Is(err, domainvilla.ErrInvalidWeekend),
		errors.Is(err, domainvilla.ErrSpecialDayName),
		errors.Is(err, domainvilla.ErrSpecialDayDate),
		errors.Is(err, money.ErrMalformedAmount),
		errors.Is(err, bookingapp.ErrNoClientEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
