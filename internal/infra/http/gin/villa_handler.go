package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	villaapp "villadesk/internal/app/handlers/villa"
	"villadesk/internal/app/queries"
)

type VillaHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Availability(c *gin.Context)
}

type VillaHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type villaRequest struct {
	Name          string           `json:"name"`
	Location      string           `json:"location"`
	MaxGuests     int              `json:"max_guests"`
	Status        string           `json:"status"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
	Amenities     []string         `json:"amenities"`
	Order         int              `json:"order"`
	PricePerNight string           `json:"price_per_night"`
	WeekendPrice  *string          `json:"weekend_price"`
	WeekendDays   []int            `json:"weekend_days"`
	SpecialPrices []map[string]any `json:"special_prices"`
}

func (h VillaHandler) List(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[villaapp.ListVillasQuery, dto.VillaCollection](c.Request.Context(), h.Queries, villaapp.ListVillasQuery{
		Status: c.Query("status"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h VillaHandler) Create(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	cmd, ok := h.bindSaveCommand(c, "")
	if !ok {
		return
	}
	result, err := commands.Dispatch[villaapp.SaveVillaCommand, *villaapp.SaveVillaResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result.Villa)
}

func (h VillaHandler) Get(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[villaapp.GetVillaQuery, dto.VillaDTO](c.Request.Context(), h.Queries, villaapp.GetVillaQuery{
		VillaID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h VillaHandler) Update(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	cmd, ok := h.bindSaveCommand(c, c.Param("id"))
	if !ok {
		return
	}
	result, err := commands.Dispatch[villaapp.SaveVillaCommand, *villaapp.SaveVillaResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Villa)
}

func (h VillaHandler) Delete(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	_, err := commands.Dispatch[villaapp.DeleteVillaCommand, struct{}](c.Request.Context(), h.Commands, villaapp.DeleteVillaCommand{
		VillaID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h VillaHandler) Availability(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := queries.Ask[villaapp.AvailabilityQuery, dto.AvailabilityDTO](c.Request.Context(), h.Queries, villaapp.AvailabilityQuery{
		VillaID:          c.Param("id"),
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		ExcludeBookingID: c.Query("exclude_booking_id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h VillaHandler) bindSaveCommand(c *gin.Context, villaID string) (villaapp.SaveVillaCommand, bool) {
	var req villaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return villaapp.SaveVillaCommand{}, false
	}
	basePrice, err := parseMoney(req.PricePerNight)
	if err != nil {
		respondDomainError(c, err)
		return villaapp.SaveVillaCommand{}, false
	}
	weekendPrice, err := parseOptionalMoney(req.WeekendPrice)
	if err != nil {
		respondDomainError(c, err)
		return villaapp.SaveVillaCommand{}, false
	}
	return villaapp.SaveVillaCommand{
		VillaID:       villaID,
		Name:          req.Name,
		Location:      req.Location,
		MaxGuests:     req.MaxGuests,
		Status:        req.Status,
		Description:   req.Description,
		ImageURL:      req.Image,
		Amenities:     req.Amenities,
		Order:         req.Order,
		BasePrice:     basePrice,
		WeekendPrice:  weekendPrice,
		WeekendDays:   req.WeekendDays,
		SpecialPrices: req.SpecialPrices,
	}, true
}

var _ VillaHTTP = VillaHandler{}
