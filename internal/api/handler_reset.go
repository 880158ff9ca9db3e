package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"station-board-backend/internal/mw"
	"station-board-backend/internal/store"
)

// ResetResponse reports the outcome of a manual reset.
type ResetResponse struct {
	WorkDate string            `json:"work_date"`
	Counts   store.ResetCounts `json:"counts"`
	Total    int64             `json:"total"`
}

// ResetDailyData handles POST /api/reset-daily-data. When a step fails the
// counts of the steps that ran are still returned alongside the error.
func (h *Handler) ResetDailyData(c *gin.Context) {
	counts, err := h.resetter.RunOnce(c.Request.Context())
	resp := ResetResponse{WorkDate: h.resetter.Today(), Counts: counts, Total: counts.Total()}
	if err != nil {
		kind := store.KindOf(err)
		h.logger.Error("manual reset failed",
			zap.String("request_id", mw.GetRequestID(c)), zap.Any("counts", counts), zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatusJSON(statusForKind(kind), gin.H{
			"error":  store.Message(err),
			"kind":   kind,
			"result": resp,
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
