// internal/app/features/contacts/routes.go
package contacts

import (
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the contact routes (typically under "/contacts").
// Submitting a lead is public; everything else is admin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	if h.Limiter != nil {
		r.With(ratelimit.Middleware(h.Limiter, "Too many messages. Please try again later.")).
			Post("/", h.HandleSubmit)
	} else {
		r.Post("/", h.HandleSubmit)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)
		pr.Get("/", h.ServeList)
		pr.Get("/stats", h.ServeStats)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Put("/{id}/mark-read", h.HandleMarkRead)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
