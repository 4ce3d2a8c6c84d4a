package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jeremyjsx/minitext/internal/middleware"
)

type loginRequest struct {
	Password string `json:"password"`
}

// Login checks a password against the admin secret. No session is issued;
// the client sends the same secret as its bearer token afterwards.
func Login(secret string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
			return
		}
		if !middleware.SecretMatches(secret, req.Password) {
			logger.Warn("admin login rejected", "request_id", middleware.GetRequestID(r.Context()))
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid password", nil)
			return
		}
		writeJSON(w, http.StatusOK, successBody)
	}
}
