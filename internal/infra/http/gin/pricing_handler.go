package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/dto"
	pricingapp "villadesk/internal/app/handlers/pricing"
	"villadesk/internal/app/queries"
	"villadesk/internal/domain/shared/money"
)

type PricingHTTP interface {
	Preview(c *gin.Context)
}

type PricingHandler struct {
	Queries queries.Bus
}

type previewRequest struct {
	VillaID        string  `json:"villa_id"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	AdvancePayment string  `json:"advance_payment"`
	OverrideTotal  *string `json:"override_total"`
}

func (h PricingHandler) Preview(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	advance := money.Money{}
	if req.AdvancePayment != "" {
		if advance, err = parseMoney(req.AdvancePayment); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	override, err := parseOptionalMoney(req.OverrideTotal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	result, err := queries.Ask[pricingapp.PreviewQuery, dto.StayQuoteDTO](c.Request.Context(), h.Queries, pricingapp.PreviewQuery{
		VillaID:       req.VillaID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		OverrideTotal: override,
		Advance:       advance,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
