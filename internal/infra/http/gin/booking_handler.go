package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	bookingapp "villadesk/internal/app/handlers/booking"
	"villadesk/internal/app/queries"
	"villadesk/internal/domain/shared/money"
)

type BookingHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Calendar(c *gin.Context)
	SendConfirmation(c *gin.Context)
}

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type bookingRequest struct {
	VillaID        string  `json:"villa_id"`
	ClientName     string  `json:"client_name"`
	ClientPhone    string  `json:"client_phone"`
	ClientEmail    string  `json:"client_email"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	Status         string  `json:"status"`
	Guests         int     `json:"guests"`
	PaymentStatus  string  `json:"payment_status"`
	PaymentMethod  string  `json:"payment_method"`
	Source         string  `json:"source"`
	Notes          string  `json:"notes"`
	AdvancePayment string  `json:"advance_payment"`
	OverrideTotal  *string `json:"override_total"`
}

func (h BookingHandler) List(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	q := bookingapp.ListBookingsQuery{
		VillaID: c.Query("villa_id"),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
	}
	var ok bool
	if q.CheckInAfter, ok = optionalDateQuery(c, "check_in_after"); !ok {
		return
	}
	if q.CheckInBefore, ok = optionalDateQuery(c, "check_in_before"); !ok {
		return
	}
	result, err := queries.Ask[bookingapp.ListBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Create(c *gin.Context) {
	p, ok := requireAuth(c, "")
	if !ok {
		return
	}
	cmd, ok := h.bindSaveCommand(c, "", p.ID)
	if !ok {
		return
	}
	cmd.IdempotencyKeyV = c.GetHeader("Idempotency-Key")
	result, err := commands.Dispatch[bookingapp.SaveBookingCommand, *bookingapp.SaveBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, result.Booking)
}

func (h BookingHandler) Get(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[bookingapp.GetBookingQuery, dto.BookingDTO](c.Request.Context(), h.Queries, bookingapp.GetBookingQuery{
		BookingID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Update(c *gin.Context) {
	p, ok := requireAuth(c, "")
	if !ok {
		return
	}
	cmd, ok := h.bindSaveCommand(c, c.Param("id"), p.ID)
	if !ok {
		return
	}
	result, err := commands.Dispatch[bookingapp.SaveBookingCommand, *bookingapp.SaveBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Booking)
}

func (h BookingHandler) Delete(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	_, err := commands.Dispatch[bookingapp.DeleteBookingCommand, struct{}](c.Request.Context(), h.Commands, bookingapp.DeleteBookingCommand{
		BookingID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BookingHandler) Calendar(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := queries.Ask[bookingapp.CalendarQuery, []dto.CalendarEntryDTO](c.Request.Context(), h.Queries, bookingapp.CalendarQuery{
		Start:   start,
		End:     end,
		VillaID: c.Query("villa_id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": result})
}

func (h BookingHandler) SendConfirmation(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	_, err := commands.Dispatch[bookingapp.SendConfirmationCommand, struct{}](c.Request.Context(), h.Commands, bookingapp.SendConfirmationCommand{
		BookingID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (h BookingHandler) bindSaveCommand(c *gin.Context, bookingID, actorID string) (bookingapp.SaveBookingCommand, bool) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return bookingapp.SaveBookingCommand{}, false
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return bookingapp.SaveBookingCommand{}, false
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return bookingapp.SaveBookingCommand{}, false
	}
	advance := money.Money{}
	if req.AdvancePayment != "" {
		if advance, err = parseMoney(req.AdvancePayment); err != nil {
			respondDomainError(c, err)
			return bookingapp.SaveBookingCommand{}, false
		}
	}
	override, err := parseOptionalMoney(req.OverrideTotal)
	if err != nil {
		respondDomainError(c, err)
		return bookingapp.SaveBookingCommand{}, false
	}
	return bookingapp.SaveBookingCommand{
		BookingID:      bookingID,
		VillaID:        req.VillaID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         req.Status,
		Guests:         req.Guests,
		PaymentStatus:  req.PaymentStatus,
		PaymentMethod:  req.PaymentMethod,
		Source:         req.Source,
		Notes:          req.Notes,
		AdvancePayment: advance,
		OverrideTotal:  override,
		ActorID:        actorID,
	}, true
}

// optionalDateQuery parses a date query parameter when present; a second
// false return means the request was already answered with 400.
func optionalDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := parseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, false
	}
	return t, true
}

func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

var _ BookingHTTP = BookingHandler{}
