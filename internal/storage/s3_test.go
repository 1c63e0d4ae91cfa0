package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	getBody        []byte
	getContentType string
	getErr         error
	putLastBucket  string
	putLastKey     string
	putLastType    string
	putLastBody    []byte
	putErr         error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.getBody))}
	if f.getContentType != "" {
		out.ContentType = aws.String(f.getContentType)
	}
	return out, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putLastBucket = aws.ToString(in.Bucket)
	f.putLastKey = aws.ToString(in.Key)
	f.putLastType = aws.ToString(in.ContentType)
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.putLastBody = b
	}
	return &s3.PutObjectOutput{}, nil
}

func withFakeS3(t *testing.T, f *fakeS3) {
	t.Helper()
	old := newS3Client
	newS3Client = func(ctx context.Context, region string) (s3iface, error) { return f, nil }
	t.Cleanup(func() { newS3Client = old })
}

func TestPut(t *testing.T) {
	f := &fakeS3{}
	withFakeS3(t, f)
	c, err := NewS3(context.Background(), "eu-west-1", "wildlife-media")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	body := []byte{0xff, 0xd8, 0xff}
	if err := c.Put(context.Background(), "sightings/20260831/abc.jpg", "image/png", bytes.NewReader(body)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if f.putLastBucket != "wildlife-media" {
		t.Fatalf("bucket=%q", f.putLastBucket)
	}
	if f.putLastKey != "sightings/20260831/abc.jpg" {
		t.Fatalf("key=%q", f.putLastKey)
	}
	if f.putLastType != "image/png" {
		t.Fatalf("content type=%q", f.putLastType)
	}
	if !bytes.Equal(f.putLastBody, body) {
		t.Fatalf("body mismatch")
	}
}

func TestPutDefaultsContentType(t *testing.T) {
	f := &fakeS3{}
	withFakeS3(t, f)
	c, _ := NewS3(context.Background(), "eu-west-1", "b")
	if err := c.Put(context.Background(), "k.jpg", "", bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if f.putLastType != "image/jpeg" {
		t.Fatalf("content type=%q; want image/jpeg", f.putLastType)
	}
}

func TestGet(t *testing.T) {
	f := &fakeS3{getBody: []byte("png-bytes"), getContentType: "image/png"}
	withFakeS3(t, f)
	c, _ := NewS3(context.Background(), "eu-west-1", "b")
	rc, ct, err := c.Get(context.Background(), "k.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	if ct != "image/png" {
		t.Fatalf("content type=%q", ct)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "png-bytes" {
		t.Fatalf("body=%q", b)
	}
}

func TestGetDefaultsContentType(t *testing.T) {
	f := &fakeS3{getBody: []byte("x")}
	withFakeS3(t, f)
	c, _ := NewS3(context.Background(), "eu-west-1", "b")
	rc, ct, err := c.Get(context.Background(), "k.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rc.Close()
	if ct != "image/jpeg" {
		t.Fatalf("content type=%q; want image/jpeg", ct)
	}
}

func TestGetNotFound(t *testing.T) {
	f := &fakeS3{getErr: &types.NoSuchKey{}}
	withFakeS3(t, f)
	c, _ := NewS3(context.Background(), "eu-west-1", "b")
	if _, _, err := c.Get(context.Background(), "missing.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v; want ErrNotFound", err)
	}
}

func TestGetOtherError(t *testing.T) {
	boom := errors.New("access denied")
	f := &fakeS3{getErr: boom}
	withFakeS3(t, f)
	c, _ := NewS3(context.Background(), "eu-west-1", "b")
	if _, _, err := c.Get(context.Background(), "k.jpg"); !errors.Is(err, boom) {
		t.Fatalf("err=%v; want passthrough", err)
	}
}
