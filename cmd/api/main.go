package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-github/v75/github"

	"github.com/jeremyjsx/minitext/internal/config"
	"github.com/jeremyjsx/minitext/internal/deploy"
	"github.com/jeremyjsx/minitext/internal/events"
	"github.com/jeremyjsx/minitext/internal/handlers"
	"github.com/jeremyjsx/minitext/internal/posts"
	"github.com/jeremyjsx/minitext/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set, all write requests will be rejected")
	}

	ctx := context.Background()
	store, ping, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize content store", "backend", cfg.Backend(), "error", err)
		os.Exit(1)
	}

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	svc := posts.NewService(store, publisher, logger)
	router := handlers.NewRouter(handlers.RouterDeps{
		Posts: handlers.NewPostsHandler(svc, logger),
		Health: &handlers.HealthDeps{
			Backend:     string(cfg.Backend()),
			Ping:        ping,
			RabbitMQURL: cfg.RabbitMQURL,
		},
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "backend", cfg.Backend())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

func newStore(ctx context.Context, cfg *config.Config) (posts.Store, func(context.Context) error, error) {
	switch cfg.Backend() {
	case config.BackendGitHub:
		st := posts.NewGitHubStore(github.NewClient(nil), posts.GitHubConfig{
			Token:  cfg.GitHubToken,
			Owner:  cfg.GitHubOwner,
			Repo:   cfg.GitHubRepo,
			Branch: cfg.GitHubBranch,
			Dir:    cfg.GitHubPostsPath,
		})
		return st, st.Ping, nil

	case config.BackendS3:
		if cfg.S3Bucket == "" {
			return nil, nil, errors.New("S3_BUCKET is required for the s3 backend")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
				o.UsePathStyle = true
			}
		})
		objects := storage.NewS3Storage(client, cfg.S3Bucket)
		return posts.NewObjectStore(objects, cfg.S3Prefix), objects.Ping, nil

	default:
		st := posts.NewFileStore(cfg.PostsDir)
		return st, st.Ping, nil
	}
}

// newPublisher picks how remote writes trigger a rebuild: through the broker
// when one is configured, otherwise by calling the deploy hook directly.
func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, func()) {
	noClose := func() {}
	if cfg.Backend() == config.BackendFS {
		return events.NoopPublisher{}, noClose
	}

	if cfg.RabbitMQURL != "" {
		pub, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err == nil {
			logger.Info("publishing post changes to rabbitmq", "exchange", events.ExchangeName)
			return pub, func() {
				if err := pub.Close(); err != nil {
					logger.Error("failed to close rabbitmq publisher", "error", err)
				}
			}
		}
		logger.Warn("rabbitmq unavailable, calling deploy hook directly", "error", err)
	}

	hook := deploy.NewHook(cfg.DeployHookURL, cfg.DeployHookTimeout, logger)
	return events.NewHookPublisher(hook), noClose
}
