package main

import (
	"context"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/yourorg/wildlife-sightings/internal/api"
	"github.com/yourorg/wildlife-sightings/internal/config"
	"github.com/yourorg/wildlife-sightings/internal/metrics"
	"github.com/yourorg/wildlife-sightings/internal/retry"
	"github.com/yourorg/wildlife-sightings/internal/storage"
	"github.com/yourorg/wildlife-sightings/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Structured logger (zap)
	zl := newZap(cfg.LogLevel)
	defer zl.Sync()

	// Metrics server
	metrics.Init()
	go func() {
		_ = metrics.Serve(cfg.MetricsAddr)
	}()

	ctx := context.Background()

	// The document store may still be starting; wait for it under the
	// bounded retry loop and abort if it never comes up.
	loop := retry.New(cfg.ConnectAttempts, cfg.ConnectDelay)
	docs, err := store.Connect(ctx, cfg.MongoURI, loop)
	if err != nil {
		zl.Fatal("document store unavailable", zap.Error(err))
	}
	defer docs.Close(ctx)

	blobs, err := storage.NewS3(ctx, cfg.AWSRegion, cfg.BucketName)
	if err != nil {
		zl.Fatal("s3 init", zap.Error(err))
	}

	h := api.NewHandler(docs, blobs, zl)
	r := api.NewRouter(h, zl)

	zl.Info("api started",
		zap.String("port", cfg.Port),
		zap.String("bucket", cfg.BucketName),
		zap.String("metrics", cfg.MetricsAddr))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server failed", zap.Error(err))
	}
}

func newZap(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
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
