// Package router sets up all HTTP routes and middleware chains for the
// PracticeHub API. It organizes routes into public browse endpoints and
// authenticated mutation groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"practicehub/internal/handlers"
	"practicehub/internal/middleware"
	"practicehub/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Store, auth *handlers.Auth, practices *handlers.Practices, engagement *handlers.Engagement, comments *handlers.Comments, attachments *handlers.Attachments) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadIdentity(tokens))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Identity endpoints.
	r.Post("/auth/login", auth.Login)
	r.Post("/auth/logout", auth.Logout)

	// Mutations share a per-IP rate limit so a single client cannot hammer
	// the counter transactions.
	mutationLimit := middleware.NewRateLimiter(60, time.Minute)

	r.Route("/best-practices", func(r chi.Router) {
		// Public browse surface. LoadIdentity already widened visibility
		// for authenticated viewers; no auth is enforced here.
		r.Get("/", practices.List)
		r.Get("/categories", practices.Categories)
		r.Get("/{id}", practices.Detail)
		r.Get("/{id}/comments", comments.List)

		// Authenticated mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(mutationLimit.Middleware)

			r.Post("/", practices.Create)
			r.Put("/{id}", practices.Update)
			r.Post("/{id}/submit", practices.Submit)
			r.Post("/{id}/archive", practices.Archive)

			r.Post("/{id}/vote", engagement.Vote)
			r.Post("/{id}/save", engagement.Save)
			r.Delete("/{id}/save", engagement.Unsave)
			r.Post("/{id}/use", engagement.Use)

			r.Post("/{id}/comments", comments.Add)

			r.Post("/attachments", attachments.CreateUploadURL)
		})

		// Review workflow — reviewer or admin role.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireReviewer)

			r.Post("/{id}/publish", practices.Publish)
			r.Post("/{id}/reject", practices.Reject)
			r.Post("/{id}/feature", practices.Feature)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(mutationLimit.Middleware)

		r.Post("/{id}/resolve", comments.Resolve)
		r.Post("/{id}/upvote", comments.Upvote)
		r.Delete("/{id}/upvote", comments.RemoveUpvote)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
