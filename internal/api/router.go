package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"station-board-backend/internal/mw"
)

// RouterConfig tunes the middleware chain.
type RouterConfig struct {
	RateLimitPerSec float64
	RateLimitBurst  int
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 5
	}

	r := gin.New()
	r.Use(mw.RequestID(), mw.Logger(logger), mw.Recovery(logger))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	{
		api.POST("/rooms", h.CreateRoom)
		api.GET("/rooms/available", h.AvailableRooms)
		api.DELETE("/rooms/:room_id", h.DeleteRoom)
		api.GET("/rooms/:room_id/doctors", h.RoomDoctors)

		api.POST("/assignments", h.Assign)
		api.POST("/assignments/cancel", h.CancelAssignment)
		api.DELETE("/assignments/:station_staff_id", h.DeleteAssignment)

		api.POST("/doctor-assignments", h.AssignDoctor)
		api.POST("/doctor-assignments/cancel", h.UnassignDoctor)

		api.POST("/staff", h.AddStaff)
		api.POST("/staff/toggle", h.ToggleStaff)

		api.GET("/stations", h.ListStations)
		api.GET("/stations/:station_id/staff", h.StationStaff)

		api.GET("/station-order", h.GetStationOrder)
		api.POST("/station-order", h.SaveStationOrder)
		api.POST("/station-order/reset", h.ResetStationOrder)

		api.POST("/reset-daily-data", h.ResetDailyData)

		api.GET("/procedures", h.ListProcedures)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
