// internal/app/features/areas/get.go
package areas

import (
	"net/http"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
)

// ServeGet handles GET /areas/{key}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get area")
	defer cancel()

	a, err := areastore.New(h.DB).GetByKey(ctx, areaKeyParam(r, "key"))
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}
	respond.OK(w, a)
}
