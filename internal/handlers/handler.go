// Package handlers exposes the journal service over HTTP.
package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/AnshRaj112/reflect-backend/internal/journal"
	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/services"
	"github.com/AnshRaj112/reflect-backend/internal/store"
)

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, userID, folder string) (string, error)
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	Journal  *journal.Service
	Users    store.Users
	Sessions services.SessionStore
	// Uploader is nil when image uploads are not configured.
	Uploader ImageUploader
	// Ready reports whether the backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

type ctxKey int

const userIDKey ctxKey = iota

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth rejects requests without a valid session and stores the
// session's user id in the request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		userID, ok, err := h.Sessions.ValidateSession(r.Context(), token)
		if err != nil {
			logger.Error("session validation failed", "error", err)
		}
		if err != nil || !ok {
			writeError(w, http.StatusUnauthorized, "Session expired. Please sign in again.")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
