package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/reflect-backend/internal/handlers"
	"github.com/AnshRaj112/reflect-backend/internal/middleware"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/health/ready", h.Readiness)

	// Auth routes
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/signout", h.Signout)

	// Mood catalog
	r.Get("/api/moods", h.GetMoods)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.Me)

		// Collections
		r.Get("/api/collections", h.GetCollections)
		r.Post("/api/collections", h.CreateCollection)
		r.Delete("/api/collections/{id}", h.DeleteCollection)
		r.Get("/api/collections/{id}/entries", h.GetCollectionEntries)

		// Journaling routes
		r.Get("/api/journals", h.GetJournals)
		r.Post("/api/journals", h.CreateJournal)
		r.Get("/api/journals/{id}", h.GetJournal)
		r.Put("/api/journals/{id}", h.UpdateJournal)
		r.Delete("/api/journals/{id}", h.DeleteJournal)

		// Drafts, autosaved by the editor
		r.Get("/api/drafts", h.GetDraft)
		r.With(middleware.DraftRateLimit).Put("/api/drafts", h.SaveDraft)

		// File upload routes
		r.Post("/api/upload", h.UploadFile)
	})
}

// Paths lists the registered routes for the startup log.
func Paths(r chi.Routes) []string {
	var out []string
	chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, method+" "+route)
		return nil
	})
	return out
}
