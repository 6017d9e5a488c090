package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"villadesk/internal/infra/config"
	"villadesk/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Villa          VillaHTTP
	Booking        BookingHTTP
	Pricing        PricingHTTP
	SpecialDay     SpecialDayHTTP
	Dashboard      DashboardHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Villa != nil {
		villaGroup := api.Group("/villas")
		villaGroup.GET("", h.Villa.List)
		villaGroup.POST("", h.Villa.Create)
		villaGroup.GET("/:id", h.Villa.Get)
		villaGroup.PUT("/:id", h.Villa.Update)
		villaGroup.DELETE("/:id", h.Villa.Delete)
		villaGroup.GET("/:id/availability", h.Villa.Availability)
	}
	if h.Booking != nil {
		bookingGroup := api.Group("/bookings")
		bookingGroup.GET("", h.Booking.List)
		bookingGroup.POST("", h.Booking.Create)
		bookingGroup.GET("/calendar", h.Booking.Calendar)
		bookingGroup.GET("/:id", h.Booking.Get)
		bookingGroup.PUT("/:id", h.Booking.Update)
		bookingGroup.DELETE("/:id", h.Booking.Delete)
		bookingGroup.POST("/:id/send-confirmation", h.Booking.SendConfirmation)
	}
	if h.Pricing != nil {
		api.POST("/pricing/preview", h.Pricing.Preview)
	}
	if h.SpecialDay != nil {
		sdGroup := api.Group("/special-days")
		sdGroup.GET("", h.SpecialDay.List)
		sdGroup.POST("", h.SpecialDay.Create)
		sdGroup.PUT("/:id", h.SpecialDay.Update)
		sdGroup.DELETE("/:id", h.SpecialDay.Delete)
	}
	if h.Dashboard != nil {
		dashGroup := api.Group("/dashboard")
		dashGroup.GET("/stats", h.Dashboard.Stats)
		dashGroup.GET("/today-activity", h.Dashboard.TodayActivity)
		dashGroup.GET("/recent-bookings", h.Dashboard.RecentBookings)
		dashGroup.GET("/revenue-chart", h.Dashboard.RevenueChart)
		dashGroup.GET("/villa-performance", h.Dashboard.VillaPerformance)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
