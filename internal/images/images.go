// Package images generates storage keys for uploaded sighting photos and
// validates keys presented for retrieval.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/wildlife-sightings/internal/storage"
)

// allowedExtensions is the set of image types the retrieval endpoint serves.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var (
	ErrEmptyFilename = errors.New("empty filename")
	ErrEmptyContent  = errors.New("empty content")
	ErrInvalidKey    = errors.New("invalid image key")
	ErrBadExtension  = errors.New("invalid file type")
)

// NewKey builds the storage key for an uploaded image:
// sightings/{YYYYMMDD}/{uuid}{ext}. The extension comes from the filename,
// lowercased; a filename without one gets .jpg.
func NewKey(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("sightings/%s/%s%s", now.Format("20060102"), uuid.NewString(), ext)
}

// ValidateKey rejects keys that could escape the bucket prefix or name
// non-image content. Must pass before any storage call.
func ValidateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, r := range key {
		if !isKeyRune(r) {
			return ErrInvalidKey
		}
	}
	if !allowedExtensions[strings.ToLower(path.Ext(key))] {
		return ErrBadExtension
	}
	return nil
}

func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '/', r == '-':
		return true
	}
	return false
}

// Upload streams a named upload into the object store and returns the
// generated key. Empty filenames and empty content are rejected rather than
// silently dropped; the caller decides whether a failed upload is fatal.
func Upload(ctx context.Context, store storage.ObjectStore, filename, contentType string, body io.Reader, size int64, now time.Time) (string, error) {
	if filename == "" {
		return "", ErrEmptyFilename
	}
	if size == 0 {
		return "", ErrEmptyContent
	}
	key := NewKey(filename, now)
	if err := store.Put(ctx, key, contentType, body); err != nil {
		return "", err
	}
	return key, nil
}
