package events

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Acknowledger is the part of amqp.Delivery the handler needs.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// HandleFunc reacts to a decoded event.
type HandleFunc func(ctx context.Context, e PostChanged) error

// HandleDelivery decodes one delivery and runs fn for post change events.
// Undecodable bodies are dropped; a failing fn requeues the delivery once.
func HandleDelivery(ctx context.Context, logger *slog.Logger, ack Acknowledger, body []byte, redelivered bool, fn HandleFunc) {
	var e PostChanged
	if err := json.Unmarshal(body, &e); err != nil {
		logger.Error("invalid event body", "error", err)
		_ = ack.Nack(false, false)
		return
	}
	if !IsPostChanged(e.Type) {
		logger.Debug("ignoring event type", "type", e.Type)
		_ = ack.Ack(false)
		return
	}

	logger.Info("post changed event received",
		"event_id", e.ID,
		"type", e.Type,
		"slug", e.Payload.Slug,
	)
	if err := fn(ctx, e); err != nil {
		logger.Error("handling event failed", "event_id", e.ID, "redelivered", redelivered, "error", err)
		_ = ack.Nack(false, !redelivered)
		return
	}
	if err := ack.Ack(false); err != nil {
		logger.Error("failed to ack", "error", err)
	}
}

// Consume runs HandleDelivery for every delivery until ctx is done or the
// channel closes.
func Consume(ctx context.Context, logger *slog.Logger, deliveries <-chan amqp.Delivery, fn HandleFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			HandleDelivery(ctx, logger, &d, d.Body, d.Redelivered, fn)
		}
	}
}
