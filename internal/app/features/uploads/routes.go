// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// Routes mounts the upload routes (typically under "/uploads"). All are admin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(h.Auth.RequireAdmin)

	r.Post("/image", h.uploadTo(folderImages))
	r.Post("/slider", h.uploadTo(folderSlider))
	r.Delete("/{filename}", h.HandleDelete)

	return r
}
