package handlers

import (
	"context"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type HealthDeps struct {
	Backend string
	// Ping checks that the content backend is reachable.
	Ping        func(ctx context.Context) error
	RabbitMQURL string
	// Timeout bounds the whole check; zero means five seconds.
	Timeout time.Duration
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func Health(deps *HealthDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeout := deps.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		checks := map[string]string{}
		status := "healthy"

		if deps.Ping != nil {
			if err := deps.Ping(ctx); err != nil {
				checks[deps.Backend] = "unhealthy"
				status = "unhealthy"
			} else {
				checks[deps.Backend] = "ok"
			}
		}

		if deps.RabbitMQURL != "" {
			conn, err := dialRabbitMQ(ctx, deps.RabbitMQURL)
			if err != nil {
				checks["rabbitmq"] = "unhealthy"
				if status == "healthy" {
					status = "degraded"
				}
			} else {
				_ = conn.Close()
				checks["rabbitmq"] = "ok"
			}
		} else {
			checks["rabbitmq"] = "skipped"
		}

		code := http.StatusOK
		if status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, healthResponse{Status: status, Checks: checks})
	}
}

// dialRabbitMQ connects within ctx's deadline, handshake included.
func dialRabbitMQ(ctx context.Context, url string) (*amqp.Connection, error) {
	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}
	return amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(timeout),
	})
}
