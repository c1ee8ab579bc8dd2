// internal/app/features/auditlog/routes.go
package auditlog

import "github.com/go-chi/chi/v5"

// Routes mounts the audit log routes (typically under "/audit-events").
// Access is restricted to admins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)
		pr.Get("/", h.ServeList)
	})

	return r
}
