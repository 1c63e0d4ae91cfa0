// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the API process needs to start.
type Config struct {
	// Required.
	BucketName string
	AWSRegion  string
	MongoURI   string

	// Optional with defaults.
	Port            string
	MetricsAddr     string
	LogLevel        string
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Load reads the environment. Missing required variables produce a single
// error naming all of them so a bad deployment fails with one clear message.
func Load() (Config, error) {
	cfg := Config{
		BucketName:      os.Getenv("BUCKET_NAME"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		MongoURI:        os.Getenv("MONGO_URI"),
		Port:            getEnv("PORT", "8080"),
		MetricsAddr:     getEnv("METRICS_ADDR", ":9090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ConnectAttempts: getEnvInt("CONNECT_MAX_ATTEMPTS", 60),
		ConnectDelay:    getEnvDuration("CONNECT_RETRY_DELAY", 30*time.Second),
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{"BUCKET_NAME", cfg.BucketName},
		{"AWS_REGION", cfg.AWSRegion},
		{"MONGO_URI", cfg.MongoURI},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
