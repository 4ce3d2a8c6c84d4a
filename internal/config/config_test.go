package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestConfig_Backend(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Backend
	}{
		{name: "default is filesystem", cfg: Config{}, want: BackendFS},
		{name: "token selects github", cfg: Config{GitHubToken: "t"}, want: BackendGitHub},
		{name: "hosted selects github", cfg: Config{Hosted: true}, want: BackendGitHub},
		{name: "explicit s3", cfg: Config{ContentBackend: "s3", GitHubToken: "t"}, want: BackendS3},
		{name: "explicit fs overrides token", cfg: Config{ContentBackend: "fs", GitHubToken: "t"}, want: BackendFS},
		{name: "unknown falls through", cfg: Config{ContentBackend: "ftp"}, want: BackendFS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Backend(); got != tt.want {
				t.Errorf("Backend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("CONTENT_BACKEND", "GitHub")
	t.Setenv("HOSTED", "1")
	t.Setenv("DEPLOY_HOOK_TIMEOUT", "3s")
	t.Setenv("POSTS_DIR", "")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.AdminPassword != "s3cret" {
		t.Errorf("AdminPassword = %q", cfg.AdminPassword)
	}
	if cfg.Backend() != BackendGitHub {
		t.Errorf("Backend() = %q", cfg.Backend())
	}
	if !cfg.Hosted {
		t.Error("Hosted = false")
	}
	if cfg.DeployHookTimeout != 3*time.Second {
		t.Errorf("DeployHookTimeout = %v", cfg.DeployHookTimeout)
	}
	if cfg.PostsDir != "content/posts" {
		t.Errorf("PostsDir = %q", cfg.PostsDir)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DEPLOY_HOOK_TIMEOUT", "soon")
	if got := Load().DeployHookTimeout; got != 10*time.Second {
		t.Errorf("DeployHookTimeout = %v, want default", got)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	if got := (&Config{LogLevel: "debug"}).SlogLevel(); got != slog.LevelDebug {
		t.Errorf("debug: got %v", got)
	}
	if got := (&Config{LogLevel: "loud"}).SlogLevel(); got != slog.LevelInfo {
		t.Errorf("invalid: got %v", got)
	}
}
