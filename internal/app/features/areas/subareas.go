// internal/app/features/areas/subareas.go
package areas

import (
	"net/http"
	"strconv"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeSubAreas handles GET /areas/{key}/subareas.
func (h *Handler) ServeSubAreas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list sub-areas")
	defer cancel()

	a, err := areastore.New(h.DB).GetByKey(ctx, areaKeyParam(r, "key"))
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}
	respond.List(w, a.SubAreas, len(a.SubAreas), nil)
}

// ServeSubArea handles GET /areas/{key}/subareas/{id}.
func (h *Handler) ServeSubArea(w http.ResponseWriter, r *http.Request) {
	id, aerr := subAreaIDParam(r, "id")
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get sub-area")
	defer cancel()

	a, err := areastore.New(h.DB).GetByKey(ctx, areaKeyParam(r, "key"))
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}
	i := a.FindSubArea(id)
	if i < 0 {
		respond.Error(w, apperr.NotFound("sub-area"), "")
		return
	}
	respond.OK(w, a.SubAreas[i])
}

// HandleCreateSubArea handles POST /areas/{key}/subareas. The id is taken
// from the clock when the body omits it.
func (h *Handler) HandleCreateSubArea(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")

	var in subAreaInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create sub-area")
	defer cancel()

	sa, err := areastore.New(h.DB).AddSubArea(ctx, key, in.model(), in.Order)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	id := strconv.FormatInt(sa.ID, 10)
	h.Log.Info("sub-area created", zap.String("area_key", key), zap.Int64("sub_area_id", sa.ID))
	h.AuditLog.Admin(ctx, r, audit.EventSubAreaCreated, key+"/"+id, map[string]string{"title": sa.Title})
	respond.Created(w, "Sub-area created", sa)
}

// HandleUpdateSubArea handles PUT /areas/{key}/subareas/{id}. Societies are
// edited through /societies.
func (h *Handler) HandleUpdateSubArea(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")
	id, aerr := subAreaIDParam(r, "id")
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in subAreaUpdateInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	if in.empty() {
		respond.Error(w, apperr.Invalid("body", "No fields to update."), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update sub-area")
	defer cancel()

	sa, err := areastore.New(h.DB).UpdateSubArea(ctx, key, id, func(sa *models.SubArea) { in.apply(sa) })
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("sub-area updated", zap.String("area_key", key), zap.Int64("sub_area_id", id))
	h.AuditLog.Admin(ctx, r, audit.EventSubAreaUpdated, key+"/"+strconv.FormatInt(id, 10), nil)
	respond.Message(w, "Sub-area updated", sa)
}

// HandleDeleteSubArea handles DELETE /areas/{key}/subareas/{id}. The
// sub-area's societies go with it.
func (h *Handler) HandleDeleteSubArea(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")
	id, aerr := subAreaIDParam(r, "id")
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete sub-area")
	defer cancel()

	if err := areastore.New(h.DB).DeleteSubArea(ctx, key, id); err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("sub-area deleted", zap.String("area_key", key), zap.Int64("sub_area_id", id))
	h.AuditLog.Admin(ctx, r, audit.EventSubAreaDeleted, key+"/"+strconv.FormatInt(id, 10), nil)
	respond.Message(w, "Sub-area deleted", nil)
}
