// The frontend forwards browser traffic to the media, data and alerts
// services. It owns no storage; per-call timeouts and a small bounded retry
// cover transient backend restarts.
package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/api"
	"github.com/yourorg/wildlife-sightings/internal/proxy"
)

func main() {
	zl := newZap(getenv("LOG_LEVEL", "info"))
	defer zl.Sync()

	mediaURL := getenv("MEDIA_URL", "http://wildlife-media:5000")
	dataURL := getenv("DATA_URL", "http://wildlife-data:5000")
	alertsURL := getenv("ALERTS_URL", "http://wildlife-alerts:5000")

	timeout := getenvDuration("PROXY_TIMEOUT", 10*time.Second)
	attempts := 3
	delay := getenvDuration("PROXY_RETRY_DELAY", 2*time.Second)

	media := proxy.New(mediaURL, timeout, attempts, delay, zl)
	data := proxy.New(dataURL, timeout, attempts, delay, zl)
	alerts := proxy.New(alertsURL, timeout, attempts, delay, zl)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(zl))

	r.GET("/wildlife/health", api.Health("frontend"))
	r.POST("/wildlife/api/sightings", media.Handle)
	r.GET("/wildlife/api/sightings", data.Handle)
	r.GET("/wildlife/api/sightings/:id", data.Handle)
	r.GET("/wildlife/api/images/*key", media.Handle)
	r.POST("/wildlife/api/gps", alerts.Handle)
	r.GET("/wildlife/api/gps", alerts.Handle)

	port := getenv("PORT", "5000")
	zl.Info("frontend started", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func newZap(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
