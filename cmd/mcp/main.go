package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	mcpadapter "github.com/SachinASIET26/Neethi-sub000/internal/adapters/mcp"
	"github.com/SachinASIET26/Neethi-sub000/internal/bootstrap"
	"github.com/SachinASIET26/Neethi-sub000/internal/config"
	"github.com/SachinASIET26/Neethi-sub000/internal/observability/logging"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	// Stdout carries the stdio protocol, so logs go to stderr.
	logger := logging.NewWithWriter(os.Stderr, "mcp", cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if err := mcpadapter.NewServer(app.Service, logger).Serve(); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
