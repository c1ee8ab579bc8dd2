// internal/app/features/slider/list.go
package slider

import (
	"net/http"

	sliderstore "github.com/dalemusser/estatehub/internal/app/store/slider"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
)

// ServeList handles GET /slider-images. Only active images are listed unless
// an admin asks for ?includeInactive=true.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list slider images")
	defer cancel()

	items, err := sliderstore.New(h.DB).List(ctx, authz.IncludeInactive(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list slider images failed", err, "Could not load slider images.")
		return
	}
	respond.List(w, items, len(items), nil)
}

// ServeGet handles GET /slider-images/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	oid, aerr := imageID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get slider image")
	defer cancel()

	img, err := sliderstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "slider image", err)
		return
	}
	if !img.IsActive && !authz.IsAdmin(r) {
		respond.Error(w, apperr.NotFound("slider image"), "")
		return
	}
	respond.OK(w, img)
}
