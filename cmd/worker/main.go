package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jeremyjsx/minitext/internal/config"
	"github.com/jeremyjsx/minitext/internal/deploy"
	"github.com/jeremyjsx/minitext/internal/events"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required")
		os.Exit(1)
	}
	if cfg.DeployHookURL == "" {
		logger.Warn("DEPLOY_HOOK_URL is not set, events will be acknowledged without rebuilding")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	if err := events.DeclareTopology(ch); err != nil {
		logger.Error("failed to declare topology", "error", err)
		os.Exit(1)
	}
	// One rebuild at a time.
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("failed to set qos", "error", err)
		os.Exit(1)
	}

	deliveries, err := ch.Consume(events.QueueName, "deploy-worker", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hook := deploy.NewHook(cfg.DeployHookURL, cfg.DeployHookTimeout, logger)
	logger.Info("deploy worker started", "queue", events.QueueName)

	events.Consume(ctx, logger, deliveries, func(ctx context.Context, _ events.PostChanged) error {
		return hook.Trigger(ctx)
	})
	logger.Info("worker shutting down")
}
