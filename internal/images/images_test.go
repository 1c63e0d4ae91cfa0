package images

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	putKey  string
	putType string
	putBody []byte
	putErr  error
	calls   int
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	f.calls++
	if f.putErr != nil {
		return f.putErr
	}
	f.putKey = key
	f.putType = contentType
	b, _ := io.ReadAll(body)
	f.putBody = b
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return nil, "", errors.New("not implemented")
}

func TestNewKey(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	key := NewKey("elephant.JPG", now)
	if !strings.HasPrefix(key, "sightings/20260831/") {
		t.Fatalf("key=%q; want sightings/20260831/ prefix", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key=%q; want lowercased .jpg suffix", key)
	}

	// No extension defaults to .jpg.
	if key := NewKey("photo", now); !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key=%q; want .jpg default", key)
	}

	// Keys are unique per call.
	if NewKey("a.png", now) == NewKey("a.png", now) {
		t.Fatal("expected unique keys for identical inputs")
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{
		"sightings/20260831/abc.jpg",
		"sightings/20260831/a-b_c.JPEG",
		"x.png",
		"a/b/c.gif",
	}
	for _, k := range valid {
		if err := ValidateKey(k); err != nil {
			t.Fatalf("ValidateKey(%q)=%v; want nil", k, err)
		}
	}

	invalid := map[string]error{
		"":                          ErrInvalidKey,
		"../etc/passwd.jpg":         ErrInvalidKey,
		"sightings/../secret.png":   ErrInvalidKey,
		"/absolute/path.jpg":        ErrInvalidKey,
		"sightings/a b.jpg":         ErrInvalidKey,
		"sightings/a%00.jpg":        ErrInvalidKey,
		"sightings/20260831/x.exe":  ErrBadExtension,
		"sightings/20260831/x.txt":  ErrBadExtension,
		"sightings/20260831/noext":  ErrBadExtension,
	}
	for k, want := range invalid {
		if err := ValidateKey(k); !errors.Is(err, want) {
			t.Fatalf("ValidateKey(%q)=%v; want %v", k, err, want)
		}
	}
}

func TestUpload(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	content := []byte("image-bytes")
	f := &fakeStore{}

	key, err := Upload(context.Background(), f, "lion.png", "image/png", bytes.NewReader(content), int64(len(content)), now)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if key != f.putKey {
		t.Fatalf("returned key %q != stored key %q", key, f.putKey)
	}
	if f.putType != "image/png" {
		t.Fatalf("content type=%q", f.putType)
	}
	if !bytes.Equal(f.putBody, content) {
		t.Fatal("stored body mismatch")
	}
	if err := ValidateKey(key); err != nil {
		t.Fatalf("generated key fails validation: %v", err)
	}
}

func TestUploadRejectsEmptyFilename(t *testing.T) {
	f := &fakeStore{}
	_, err := Upload(context.Background(), f, "", "image/png", bytes.NewReader([]byte("x")), 1, time.Now())
	if !errors.Is(err, ErrEmptyFilename) {
		t.Fatalf("err=%v; want ErrEmptyFilename", err)
	}
	if f.calls != 0 {
		t.Fatal("store called for rejected upload")
	}
}

func TestUploadRejectsEmptyContent(t *testing.T) {
	f := &fakeStore{}
	_, err := Upload(context.Background(), f, "x.jpg", "image/jpeg", bytes.NewReader(nil), 0, time.Now())
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err=%v; want ErrEmptyContent", err)
	}
	if f.calls != 0 {
		t.Fatal("store called for rejected upload")
	}
}

func TestUploadPropagatesStoreError(t *testing.T) {
	boom := errors.New("bucket unavailable")
	f := &fakeStore{putErr: boom}
	key, err := Upload(context.Background(), f, "x.jpg", "", bytes.NewReader([]byte("x")), 1, time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v; want store error", err)
	}
	if key != "" {
		t.Fatalf("key=%q; want empty on failure", key)
	}
}
