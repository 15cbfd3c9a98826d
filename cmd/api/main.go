package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
	"github.com/bb-analyst/EffortPlot/internal/events"
	httpserver "github.com/bb-analyst/EffortPlot/internal/http"
	"github.com/bb-analyst/EffortPlot/internal/metrics"
)

type config struct {
	Port           string
	DataFile       string
	AllowedOrigins []string
}

func loadConfig() config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "round_players.csv"
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return config{
		Port:           port,
		DataFile:       dataFile,
		AllowedOrigins: origins,
	}
}

func main() {
	cfg := loadConfig()

	bus := events.NewBus()
	bus.Subscribe(events.DatasetLoaded, func(_ context.Context, e events.DatasetEvent) error {
		log.Printf("dataset loaded: snapshot=%s records=%d fingerprint=%.12s", e.SnapshotID, e.Records, e.Fingerprint)
		return nil
	})
	bus.Subscribe(events.DatasetInvalidated, func(_ context.Context, e events.DatasetEvent) error {
		log.Printf("dataset invalidated: snapshot=%s", e.SnapshotID)
		return nil
	})

	cache := dataset.NewCache(cfg.DataFile, bus)

	ctx := context.Background()
	if _, err := cache.Snapshot(ctx); err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	srv := httpserver.NewServer(httpserver.Dependencies{
		Cache:          cache,
		Recorder:       metrics.NewRecorder(512),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
