package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendFS     Backend = "fs"
	BackendGitHub Backend = "github"
	BackendS3     Backend = "s3"
)

type Config struct {
	Port          string
	LogLevel      string
	AdminPassword string

	ContentBackend string
	Hosted         bool
	PostsDir       string

	GitHubToken     string
	GitHubOwner     string
	GitHubRepo      string
	GitHubBranch    string
	GitHubPostsPath string

	S3Bucket   string
	S3Prefix   string
	AWSRegion  string
	S3Endpoint string

	RabbitMQURL       string
	DeployHookURL     string
	DeployHookTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("loading .env failed", "error", err)
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		ContentBackend: strings.ToLower(getEnv("CONTENT_BACKEND", "")),
		Hosted:         getBool("HOSTED", false),
		PostsDir:       getEnv("POSTS_DIR", "content/posts"),

		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:     getEnv("GITHUB_OWNER", ""),
		GitHubRepo:      getEnv("GITHUB_REPO", ""),
		GitHubBranch:    getEnv("GITHUB_BRANCH", ""),
		GitHubPostsPath: getEnv("GITHUB_POSTS_PATH", "content/posts"),

		S3Bucket:   getEnv("S3_BUCKET", ""),
		S3Prefix:   getEnv("S3_PREFIX", "posts"),
		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint: getEnv("S3_ENDPOINT", ""),

		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		DeployHookURL:     getEnv("DEPLOY_HOOK_URL", ""),
		DeployHookTimeout: getDuration("DEPLOY_HOOK_TIMEOUT", 10*time.Second),
	}
}

// Backend picks the content backend. An explicit CONTENT_BACKEND wins;
// otherwise a GitHub token or the hosted flag selects the repository backend.
func (c *Config) Backend() Backend {
	switch Backend(c.ContentBackend) {
	case BackendFS, BackendGitHub, BackendS3:
		return Backend(c.ContentBackend)
	}
	if c.GitHubToken != "" || c.Hosted {
		return BackendGitHub
	}
	return BackendFS
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		// Any non-empty value that isn't an explicit false counts as set.
		return true
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Default().Warn("invalid duration, using default", "key", key, "value", value, "error", err)
		return fallback
	}
	return d
}
