// Package api exposes the wildlife sighting HTTP surface.
package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/images"
	"github.com/yourorg/wildlife-sightings/internal/metrics"
	"github.com/yourorg/wildlife-sightings/internal/storage"
	"github.com/yourorg/wildlife-sightings/internal/store"
)

// DocumentStore is the slice of the document store the handlers use.
type DocumentStore interface {
	InsertSighting(ctx context.Context, doc bson.M) error
	ListSightings(ctx context.Context) ([]bson.M, error)
	GetSighting(ctx context.Context, id string) (bson.M, error)
	InsertGPS(ctx context.Context, doc bson.M) error
	ListGPSSince(ctx context.Context, cutoff time.Time) ([]bson.M, error)
}

const maxUploadBytes = 16 << 20

// Reserved keys are server-managed; client-supplied values are discarded.
var reservedKeys = []string{"timestamp", "image_url"}

type Handler struct {
	store DocumentStore
	blobs storage.ObjectStore
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(docs DocumentStore, blobs storage.ObjectStore, log *zap.Logger) *Handler {
	return &Handler{store: docs, blobs: blobs, log: log, now: time.Now}
}

// ReportSighting accepts a form-encoded sighting, optionally with an image
// part. The image is uploaded before the record is inserted so image_url only
// ever references a stored blob; a failed upload degrades to a record without
// one.
func (h *Handler) ReportSighting(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No form data received"})
		return
	}
	fields := c.Request.PostForm
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No form data received"})
		return
	}

	doc := bson.M{}
	for k, vs := range fields {
		if len(vs) > 0 {
			doc[k] = vs[0]
		}
	}
	for _, k := range reservedKeys {
		delete(doc, k)
	}

	for _, coord := range []string{"latitude", "longitude"} {
		v, ok := doc[coord]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v.(string), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + coord})
			return
		}
		doc[coord] = f
	}

	now := h.now().UTC()
	doc["timestamp"] = now

	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		key, err := h.uploadImage(c.Request.Context(), file, now)
		if err != nil {
			h.log.Warn("image upload failed; storing sighting without image",
				zap.String("filename", file.Filename), zap.Error(err))
			metrics.ImageUploadFailures.Inc()
		} else {
			doc["image_url"] = key
		}
	}

	if err := h.store.InsertSighting(c.Request.Context(), doc); err != nil {
		h.log.Error("insert sighting", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store sighting"})
		return
	}
	metrics.SightingsReported.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Sighting reported successfully"})
}

func (h *Handler) uploadImage(ctx context.Context, file *multipart.FileHeader, now time.Time) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	key, err := images.Upload(ctx, h.blobs, file.Filename, file.Header.Get("Content-Type"), f, file.Size, now)
	if err != nil {
		return "", err
	}
	metrics.ImagesUploaded.Inc()
	return key, nil
}

func (h *Handler) GetSightings(c *gin.Context) {
	docs, err := h.store.ListSightings(c.Request.Context())
	if err != nil {
		h.log.Error("list sightings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sightings"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) GetSighting(c *gin.Context) {
	doc, err := h.store.GetSighting(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sighting not found"})
		return
	}
	if err != nil {
		h.log.Error("get sighting", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sighting"})
		return
	}
	c.JSON(http.StatusOK, doc)
}
