// internal/app/features/areas/routes.go
package areas

import "github.com/go-chi/chi/v5"

// Routes mounts the area and sub-area routes (typically under "/areas").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads.
	r.Get("/", h.ServeList)
	r.Get("/{key}", h.ServeGet)
	r.Get("/{key}/subareas", h.ServeSubAreas)
	r.Get("/{key}/subareas/{id}", h.ServeSubArea)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)

		pr.Post("/", h.HandleCreate)
		pr.Put("/reorder", h.HandleReorder)
		pr.Put("/{key}", h.HandleUpdate)
		pr.Delete("/{key}", h.HandleDelete)

		pr.Post("/{key}/subareas", h.HandleCreateSubArea)
		pr.Put("/{key}/subareas/reorder", h.HandleReorderSubAreas)
		pr.Put("/{key}/subareas/{id}", h.HandleUpdateSubArea)
		pr.Delete("/{key}/subareas/{id}", h.HandleDeleteSubArea)
	})

	return r
}

// SocietyRoutes mounts the society routes (typically under "/societies").
// A sub-area is addressed by its area key and numeric id.
func SocietyRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{areaKey}/{subAreaId}", h.ServeSocieties)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireAdmin)

		pr.Post("/{areaKey}/{subAreaId}", h.HandleCreateSociety)
		pr.Put("/{areaKey}/{subAreaId}", h.HandleReplaceSocieties)
		pr.Delete("/{areaKey}/{subAreaId}", h.HandleClearSocieties)
		pr.Put("/{areaKey}/{subAreaId}/reorder", h.HandleReorderSocieties)
		pr.Put("/{areaKey}/{subAreaId}/{name}", h.HandleUpdateSociety)
		pr.Delete("/{areaKey}/{subAreaId}/{name}", h.HandleDeleteSociety)
	})

	return r
}
