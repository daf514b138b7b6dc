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

	"github.com/jobtrackd/jobtrackd/internal/bootstrap"
	"github.com/jobtrackd/jobtrackd/internal/config"
	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/usecase"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/notify/webhook"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/resilience"
	"github.com/jobtrackd/jobtrackd/internal/observability/logging"
	"github.com/jobtrackd/jobtrackd/internal/observability/metrics"
)

const service = "notifier"

func main() {
	cfg := config.Load()

	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, nil)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	notifierMetrics := metrics.NewNotifierMetrics(service)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	sink := webhook.New(
		cfg.WebhookURL,
		time.Duration(cfg.WebhookTimeoutSeconds)*time.Second,
		executor,
	)
	notify := usecase.NewNotifyUseCase(sink)

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: notifierMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics_server_failed", "error", err)
		}
	}()

	handler := func(msgCtx context.Context, notice domain.ReminderNotice) error {
		deliverCtx, cancel := context.WithTimeout(msgCtx, 5*time.Minute)
		defer cancel()

		notifierMetrics.ObserveSurfaceLag(service, time.Since(notice.SurfacedAt))
		notifierMetrics.StartDelivery()
		start := time.Now()
		err := notify.DeliverDueReminder(deliverCtx, notice)
		notifierMetrics.FinishDelivery(service, time.Since(start), err)
		return err
	}

	slog.Info("notifier_listening", "subject", cfg.NATSSubject)
	if err := app.Queue.SubscribeReminderDue(ctx, handler); err != nil {
		slog.Error("subscription_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics_shutdown_failed", "error", err)
	}
	slog.Info("notifier_stopped")
}
