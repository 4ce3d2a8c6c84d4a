package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jeremyjsx/minitext/internal/middleware"
)

type RouterDeps struct {
	Posts         *PostsHandler
	Health        *HealthDeps
	AdminPassword string
	Logger        *slog.Logger
}

// NewRouter mounts the API. Reads are public; writes require the admin
// secret.
func NewRouter(deps RouterDeps) http.Handler {
	auth := middleware.RequireSecret(deps.AdminPassword)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", Health(deps.Health))
	mux.HandleFunc("POST /api/auth/login", Login(deps.AdminPassword, deps.Logger))

	mux.HandleFunc("GET /api/posts", deps.Posts.List())
	mux.HandleFunc("GET /api/posts/{slug}", deps.Posts.GetBySlug())
	mux.Handle("POST /api/posts", auth(deps.Posts.Save()))
	mux.Handle("PUT /api/posts", auth(deps.Posts.Save()))
	mux.Handle("DELETE /api/posts", auth(deps.Posts.Delete()))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(deps.Logger),
		middleware.Recover(deps.Logger),
	)
}
