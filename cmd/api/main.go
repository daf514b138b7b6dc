package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/jobtrackd/jobtrackd/internal/adapters/http"
	"github.com/jobtrackd/jobtrackd/internal/bootstrap"
	"github.com/jobtrackd/jobtrackd/internal/config"
	"github.com/jobtrackd/jobtrackd/internal/observability/logging"
	"github.com/jobtrackd/jobtrackd/internal/observability/metrics"
)

const service = "api"

func main() {
	cfg := config.Load()

	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverMetrics := metrics.NewHTTPServerMetrics(service)

	app, err := bootstrap.New(ctx, cfg, serverMetrics)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Engine.Start(ctx)

	router := httpadapter.NewRouter(httpadapter.RouterDeps{
		Applications:   app.Applications,
		Notes:          app.Notes,
		Communications: app.Communications,
		Reminders:      app.Reminders,
		Documents:      app.Documents,
		Checklists:     app.Checklists,
		Patterns:       app.Patterns,
		Stats:          app.Stats,
		Timeline:       app.Timeline,
		Engine:         app.Engine,
		Exporter:       app.Exporter,
		Verifier:       app.Verifier,
		Service:        service,
		Recorder:       serverMetrics,
	})

	handler := httpadapter.WrapTrafficControl(
		router.Handler(),
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
		cfg.MaxInFlight,
		bootstrap.BackpressureWait,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", serverMetrics.Handler())
	mux.Handle("/", serverMetrics.Middleware(service, handler))

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("api_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_failed", "error", err)
	}
}
