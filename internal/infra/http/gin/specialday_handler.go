package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/commands"
	"villadesk/internal/app/dto"
	specialdayapp "villadesk/internal/app/handlers/specialday"
	"villadesk/internal/app/queries"
)

type SpecialDayHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type SpecialDayHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type specialDayRequest struct {
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

func (h SpecialDayHandler) List(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[specialdayapp.ListQuery, []dto.SpecialDayDTO](c.Request.Context(), h.Queries, specialdayapp.ListQuery{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"special_days": result})
}

func (h SpecialDayHandler) Create(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	h.save(c, "")
}

func (h SpecialDayHandler) Update(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	h.save(c, c.Param("id"))
}

func (h SpecialDayHandler) save(c *gin.Context, id string) {
	var req specialDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := commands.Dispatch[specialdayapp.SaveCommand, dto.SpecialDayDTO](c.Request.Context(), h.Commands, specialdayapp.SaveCommand{
		ID:    id,
		Name:  req.Name,
		Day:   req.Day,
		Month: req.Month,
		Year:  req.Year,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

func (h SpecialDayHandler) Delete(c *gin.Context) {
	if _, ok := requireAuth(c, "admin"); !ok {
		return
	}
	_, err := commands.Dispatch[specialdayapp.DeleteCommand, struct{}](c.Request.Context(), h.Commands, specialdayapp.DeleteCommand{
		ID: c.Param("id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var _ SpecialDayHTTP = SpecialDayHandler{}
