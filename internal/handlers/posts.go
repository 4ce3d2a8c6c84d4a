package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jeremyjsx/minitext/internal/posts"
)

const maxBodyBytes = 1 << 20

type PostsHandler struct {
	svc    *posts.Service
	logger *slog.Logger
}

func NewPostsHandler(svc *posts.Service, logger *slog.Logger) *PostsHandler {
	return &PostsHandler{
		svc:    svc,
		logger: logger,
	}
}

type SavePostRequest struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type listResponse struct {
	Posts []*posts.Post `json:"posts"`
}

func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.svc.ListPosts(r.Context())
		if err != nil {
			h.logger.Error("list posts failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch posts", nil)
			return
		}
		if list == nil {
			list = []*posts.Post{}
		}
		writeJSON(w, http.StatusOK, listResponse{Posts: list})
	}
}

func (h *PostsHandler) GetBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		if slug == "" {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "slug is required", nil)
			return
		}

		post, err := h.svc.GetPost(r.Context(), slug)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "NOT_FOUND", "post not found", nil)
				return
			}
			h.logger.Error("get post failed", "slug", slug, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch post", nil)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// Save handles both create (POST) and update (PUT); saving is idempotent
// over the slug.
func (h *PostsHandler) Save() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SavePostRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
			return
		}

		// SavePost validates before touching the store.
		if _, err := h.svc.SavePost(r.Context(), req.Slug, req.Title, req.Content); err != nil {
			var vErr *posts.ValidationError
			if errors.As(err, &vErr) {
				writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "missing required fields", vErr.Fields)
				return
			}
			h.logger.Error("save post failed", "slug", req.Slug, "method", r.Method, "error", err)
			message := "failed to create post"
			if r.Method == http.MethodPut {
				message = "failed to update post"
			}
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
			return
		}

		writeJSON(w, http.StatusOK, successBody)
	}
}

func (h *PostsHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.URL.Query().Get("slug")
		if slug == "" {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing slug parameter", nil)
			return
		}

		if err := h.svc.DeletePost(r.Context(), slug); err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "NOT_FOUND", "post not found", nil)
				return
			}
			h.logger.Error("delete post failed", "slug", slug, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete post", nil)
			return
		}

		writeJSON(w, http.StatusOK, successBody)
	}
}
