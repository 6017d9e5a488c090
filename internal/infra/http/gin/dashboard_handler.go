package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villadesk/internal/app/dto"
	dashboardapp "villadesk/internal/app/handlers/dashboard"
	"villadesk/internal/app/queries"
)

type DashboardHTTP interface {
	Stats(c *gin.Context)
	TodayActivity(c *gin.Context)
	RecentBookings(c *gin.Context)
	RevenueChart(c *gin.Context)
	VillaPerformance(c *gin.Context)
}

type DashboardHandler struct {
	Queries queries.Bus
}

func (h DashboardHandler) Stats(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[dashboardapp.StatsQuery, dto.DashboardStatsDTO](c.Request.Context(), h.Queries, dashboardapp.StatsQuery{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h DashboardHandler) TodayActivity(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[dashboardapp.TodayActivityQuery, dto.TodayActivityDTO](c.Request.Context(), h.Queries, dashboardapp.TodayActivityQuery{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h DashboardHandler) RecentBookings(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[dashboardapp.RecentBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, dashboardapp.RecentBookingsQuery{
		Limit: intQuery(c, "limit"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h DashboardHandler) RevenueChart(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[dashboardapp.RevenueChartQuery, dto.RevenueChartDTO](c.Request.Context(), h.Queries, dashboardapp.RevenueChartQuery{
		Months: intQuery(c, "months"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h DashboardHandler) VillaPerformance(c *gin.Context) {
	if _, ok := requireAuth(c, ""); !ok {
		return
	}
	result, err := queries.Ask[dashboardapp.VillaPerformanceQuery, []dto.VillaPerformanceDTO](c.Request.Context(), h.Queries, dashboardapp.VillaPerformanceQuery{})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"villas": result})
}

var _ DashboardHTTP = DashboardHandler{}
