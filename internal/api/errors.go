package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"station-board-backend/internal/mw"
	"station-board-backend/internal/store"
)

func statusForKind(kind store.ErrorKind) int {
	switch kind {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindInvalidInput:
		return http.StatusBadRequest
	case store.KindInvalidState, store.KindCapacityExceeded, store.KindConflictOnWrite:
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

// respondError writes {"error", "kind"} for err. Storage detail goes to the
// log only.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := store.KindOf(err)
	status := statusForKind(kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", mw.GetRequestID(c)), zap.String("kind", string(kind)), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": store.Message(err), "kind": kind})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "kind": store.KindInvalidInput})
}

// pathID parses a positive integer path parameter.
func (h *Handler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryID parses a required positive integer query parameter.
func (h *Handler) queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.badRequest(c, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
