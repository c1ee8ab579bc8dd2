// internal/app/features/authapi/routes.go
package authapi

import "github.com/go-chi/chi/v5"

// Routes mounts the auth endpoints (typically under "/auth").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)
		pr.Get("/verify", h.HandleVerify)
		pr.Post("/verify", h.HandleVerify)
		pr.Post("/logout", h.HandleLogout)
	})

	return r
}
