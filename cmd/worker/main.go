package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SachinASIET26/Neethi-sub000/internal/bootstrap"
	"github.com/SachinASIET26/Neethi-sub000/internal/config"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/observability/logging"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New("worker", cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewWorker(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", app.Metrics.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		logger.Info("worker metrics listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Bus.SubscribeVerification(ctx, func(handlerCtx context.Context, event domain.AuditEvent) error {
		app.Metrics.ObserveQueueLag("worker", time.Since(event.CheckedAt))
		app.Metrics.StartEvent()
		start := time.Now()

		persistCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()
		err := app.Store.InsertEvent(persistCtx, event)
		app.Metrics.FinishEvent("worker", time.Since(start), err)
		if err != nil {
			return err
		}

		app.Metrics.ObserveVerificationOutcome("worker", string(event.Existence), string(event.Relevance), event.Retained)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
