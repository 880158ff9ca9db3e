package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetVAPIDPublicKey handles GET /api/vapid_public_key. Station display
// boards fetch the key before calling PUT /api/subscriptions; deployments
// without push keys answer 503 so boards fall back to polling.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	key := ""
	if h.webpush != nil {
		key = h.webpush.VAPIDPublicKey
	}
	if key == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "board push notifications are disabled", "kind": "push_disabled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": key, "subject": h.webpush.Subscriber})
}
