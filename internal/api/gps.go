package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/metrics"
)

// gpsWindow is the trailing window served by GetGPS.
const gpsWindow = 24 * time.Hour

// ReceiveGPS records a collar ping. The payload must be a JSON object; its
// fields are stored as-is apart from the server-assigned timestamp.
func (h *Handler) ReceiveGPS(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GPS payload"})
		return
	}
	doc["timestamp"] = h.now().UTC()

	if err := h.store.InsertGPS(c.Request.Context(), doc); err != nil {
		h.log.Error("insert gps ping", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store GPS data"})
		return
	}
	metrics.GPSPings.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "GPS data received"})
}

// GetGPS returns pings from the trailing 24 hours, unordered.
func (h *Handler) GetGPS(c *gin.Context) {
	cutoff := h.now().UTC().Add(-gpsWindow)
	docs, err := h.store.ListGPSSince(c.Request.Context(), cutoff)
	if err != nil {
		h.log.Error("list gps pings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve GPS data"})
		return
	}
	c.JSON(http.StatusOK, docs)
}
