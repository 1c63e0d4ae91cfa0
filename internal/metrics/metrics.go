package metrics

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SightingsReported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wildlife",
		Name:      "sightings_reported_total",
		Help:      "Total sighting reports accepted.",
	})
	ImagesUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wildlife",
		Name:      "images_uploaded_total",
		Help:      "Total sighting images stored.",
	})
	ImageUploadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wildlife",
		Name:      "image_upload_failures_total",
		Help:      "Total image uploads that failed and were degraded to no-image sightings.",
	})
	GPSPings = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wildlife",
		Name:      "gps_pings_total",
		Help:      "Total GPS collar pings recorded.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(SightingsReported, ImagesUploaded, ImageUploadFailures, GPSPings)
}

// Serve starts a /metrics server on the given addr (e.g., ":9090"). Non-blocking when run in goroutine.
func Serve(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}

// AddrFromEnv returns listen address from METRICS_ADDR or default ":9090".
func AddrFromEnv() string {
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		return v
	}
	return ":9090"
}
