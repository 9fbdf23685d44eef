package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"parlour/internal/config"
	"parlour/internal/logging"
	"parlour/internal/server"
	"parlour/internal/services"
	"parlour/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// --- Store ---
	store, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		})
		if err != nil {
			slog.Error("failed to initialize RabbitMQ client", "error", err)
			os.Exit(1)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			slog.Warn("failed to start event consumer", "error", err)
		}
	} else {
		slog.Info("RABBITMQ_URL not set, shop events are disabled")
	}

	app := server.New(cfg, store, publisher)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", cfg.AppPort, "db", cfg.DBDriver)
		if err := app.Listen(cfg.AppPort); err != nil {
			slog.Error("server failed to start", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("error during Fiber shutdown", "error", err)
	}
	slog.Info("server gracefully stopped")
}
