// internal/app/features/properties/routes.go
package properties

import "github.com/go-chi/chi/v5"

// Routes mounts the property routes (typically under "/properties").
// Reads are public; an admin token additionally unlocks includeInactive.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pub chi.Router) {
		pub.Use(h.Auth.Optional)
		pub.Get("/", h.ServeList)
		pub.Get("/{id}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)
		pr.Post("/", h.HandleCreate)
		pr.Put("/reorder", h.HandleReorder)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
