package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hls-player/internal/platform/config"
	"hls-player/internal/platform/logger"
	"hls-player/internal/platform/metrics"
	"hls-player/internal/player"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	fetchTimeout := config.GetEnvDuration("FETCH_TIMEOUT", 15*time.Second)

	cfg := player.Config{
		BatchSize:      config.GetEnvInt("SEGMENT_BATCH_SIZE", player.DefaultBatchSize),
		Concurrency:    config.GetEnvInt("FETCH_CONCURRENCY", player.DefaultConcurrency),
		BufferSize:     config.GetEnvInt("MAX_BUFFER_SIZE", player.DefaultBufferSize),
		ReadyThreshold: config.GetEnvInt("READY_THRESHOLD", player.DefaultReadyThreshold),
	}

	log := logger.New(logLevel, logFormat)

	transport := player.NewHTTPTransport(fetchTimeout, nil)
	repo := player.NewInMemoryRepository()
	met := metrics.New()
	svc := player.NewService(transport, repo, cfg, met)
	h := player.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetActiveSessions(svc.SessionCount()) }).ServeHTTP(w, r)
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/status", h.GetStatus)
			r.Get("/segments/next", h.NextSegment)
			r.Post("/advance", h.Advance)
			r.Post("/reset", h.Reset)
			r.Delete("/", h.EndSession)
		})
	})

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"batch_size", cfg.BatchSize,
		"fetch_concurrency", cfg.Concurrency,
		"max_buffer_size", cfg.BufferSize,
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
