package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/images"
	"github.com/yourorg/wildlife-sightings/internal/storage"
)

// GetImage streams a stored image back. The key is validated before any
// storage call; storage errors map to 404 for missing keys and a generic 500
// otherwise, never leaking internals.
func (h *Handler) GetImage(c *gin.Context) {
	// Wildcard params carry a leading slash.
	key := strings.TrimPrefix(c.Param("key"), "/")

	if err := images.ValidateKey(key); err != nil {
		msg := "Invalid image key"
		if errors.Is(err, images.ErrBadExtension) {
			msg = "Invalid file type"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	body, contentType, err := h.blobs.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		h.log.Error("get image", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve image"})
		return
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		h.log.Error("read image body", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve image"})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
