package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"farmbook/internal/amqp"
	"farmbook/internal/config"
	applog "farmbook/internal/log"
	"farmbook/internal/storage"
	"farmbook/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentWorker,
		Handler: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: applog.ParseLevel(cfg.LogLevel),
		}),
	})
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher worker.ReminderPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, reminders will only be logged", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled, reminders will only be logged")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Reminder worker configured",
		"interval", cfg.ReminderInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	reminder := worker.NewReminderWorker(repo, publisher, cfg.ReminderInterval)
	if err := reminder.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Reminder worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Reminder worker stopped gracefully")
}
