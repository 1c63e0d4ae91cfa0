// Package proxy forwards frontend requests to the backing services.
package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/retry"
)

// hopByHop headers are scoped to a single connection and must not be
// forwarded (RFC 7230 section 6.1).
var hopByHop = map[string]bool{
	"Connection":          true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// Forwarder relays requests to one backend base URL. Transient dial failures
// are retried with the same bounded fixed-delay policy used at startup; each
// attempt carries the client timeout.
type Forwarder struct {
	base     string
	client   *http.Client
	attempts int
	delay    time.Duration
	log      *zap.Logger
}

func New(base string, timeout time.Duration, attempts int, delay time.Duration, log *zap.Logger) *Forwarder {
	return &Forwarder{
		base:     base,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		delay:    delay,
		log:      log,
	}
}

// Handle forwards the incoming request, preserving method, path, query, body
// and end-to-end headers. The body is buffered so retries can replay it.
func (f *Forwarder) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to read request"})
		return
	}

	target := f.base + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}

	var resp *http.Response
	loop := retry.New(f.attempts, f.delay)
	err = loop.Run(c.Request.Context(), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, c.Request.Method, target, bytes.NewReader(body))
		if err != nil {
			return err
		}
		copyHeaders(req.Header, c.Request.Header)
		r, err := f.client.Do(req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		f.log.Error("forward failed", zap.String("target", target), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	copyHeaders(c.Writer.Header(), resp.Header)
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		f.log.Warn("copy response", zap.String("target", target), zap.Error(err))
	}
}

func copyHeaders(dst, src http.Header) {
	for k, vs := range src {
		if hopByHop[http.CanonicalHeaderKey(k)] {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
