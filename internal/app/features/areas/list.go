// internal/app/features/areas/list.go
package areas

import (
	"net/http"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /areas, optionally filtered by ?q= on the name.
// Areas come back in display order with their sub-areas and societies
// sorted the same way.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list areas")
	defer cancel()

	items, err := areastore.New(h.DB).List(ctx, search.Clean(query.Get(r, "q")))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list areas failed", err, "Could not load areas.")
		return
	}
	respond.List(w, items, len(items), nil)
}
