// internal/app/features/areas/societies.go
package areas

import (
	"net/http"
	"strconv"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.uber.org/zap"
)

// societyScope reads {areaKey} and {subAreaId}.
func societyScope(r *http.Request) (string, int64, *apperr.Error) {
	id, aerr := subAreaIDParam(r, "subAreaId")
	if aerr != nil {
		return "", 0, aerr
	}
	return areaKeyParam(r, "areaKey"), id, nil
}

func resourceID(key string, subAreaID int64) string {
	return key + "/" + strconv.FormatInt(subAreaID, 10)
}

// ServeSocieties handles GET /societies/{areaKey}/{subAreaId}.
func (h *Handler) ServeSocieties(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list societies")
	defer cancel()

	a, err := areastore.New(h.DB).GetByKey(ctx, key)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}
	i := a.FindSubArea(id)
	if i < 0 {
		respond.Error(w, apperr.NotFound("sub-area"), "")
		return
	}
	socs := a.SubAreas[i].Societies
	respond.List(w, socs, len(socs), nil)
}

// HandleCreateSociety handles POST /societies/{areaKey}/{subAreaId}.
// Names are unique within the sub-area.
func (h *Handler) HandleCreateSociety(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in societyInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	if aerr := checkSocietyName("name", in.Name); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create society")
	defer cancel()

	soc, err := areastore.New(h.DB).AddSociety(ctx, key, id, in.model(), in.Order)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("society created", zap.String("area_key", key), zap.Int64("sub_area_id", id), zap.String("society", soc.Name))
	h.AuditLog.Admin(ctx, r, audit.EventSocietyUpdated, resourceID(key, id), map[string]string{"society": soc.Name, "action": "create"})
	respond.Created(w, "Society created", soc)
}

// HandleReplaceSocieties handles PUT /societies/{areaKey}/{subAreaId}
// {"societies":[...]}, replacing the whole list. Order follows list position.
func (h *Handler) HandleReplaceSocieties(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in replaceSocietiesInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	for i := range in.Societies {
		in.Societies[i].normalize()
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	socs := make([]models.Society, len(in.Societies))
	for i, s := range in.Societies {
		if aerr := checkSocietyName("societies["+strconv.Itoa(i)+"].name", s.Name); aerr != nil {
			respond.Error(w, aerr, "")
			return
		}
		socs[i] = s.model()
	}

	h.replaceSocieties(w, r, key, id, socs, "Societies updated")
}

// HandleClearSocieties handles DELETE /societies/{areaKey}/{subAreaId}.
func (h *Handler) HandleClearSocieties(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	h.replaceSocieties(w, r, key, id, []models.Society{}, "Societies cleared")
}

func (h *Handler) replaceSocieties(w http.ResponseWriter, r *http.Request, key string, id int64, socs []models.Society, msg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "replace societies")
	defer cancel()

	sa, err := areastore.New(h.DB).ReplaceSocieties(ctx, key, id, socs)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("societies replaced", zap.String("area_key", key), zap.Int64("sub_area_id", id), zap.Int("count", len(socs)))
	h.AuditLog.Admin(ctx, r, audit.EventSocietiesReplaced, resourceID(key, id), map[string]string{"count": strconv.Itoa(len(socs))})
	respond.Message(w, msg, sa)
}

// HandleUpdateSociety handles PUT /societies/{areaKey}/{subAreaId}/{name}.
// Renaming is allowed when the new name is free in the sub-area.
func (h *Handler) HandleUpdateSociety(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	name := societyNameParam(r)

	var in societyUpdateInput
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
	if in.Name != nil {
		if aerr := checkSocietyName("name", *in.Name); aerr != nil {
			respond.Error(w, aerr, "")
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update society")
	defer cancel()

	soc, err := areastore.New(h.DB).UpdateSociety(ctx, key, id, name, func(s *models.Society) { in.apply(s) })
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("society updated", zap.String("area_key", key), zap.Int64("sub_area_id", id), zap.String("society", name))
	h.AuditLog.Admin(ctx, r, audit.EventSocietyUpdated, resourceID(key, id), map[string]string{"society": name})
	respond.Message(w, "Society updated", soc)
}

// HandleDeleteSociety handles DELETE /societies/{areaKey}/{subAreaId}/{name}.
func (h *Handler) HandleDeleteSociety(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	name := societyNameParam(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete society")
	defer cancel()

	if err := areastore.New(h.DB).DeleteSociety(ctx, key, id, name); err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("society deleted", zap.String("area_key", key), zap.Int64("sub_area_id", id), zap.String("society", name))
	h.AuditLog.Admin(ctx, r, audit.EventSocietyDeleted, resourceID(key, id), map[string]string{"society": name})
	respond.Message(w, "Society deleted", nil)
}

// HandleReorderSocieties handles PUT /societies/{areaKey}/{subAreaId}/reorder
// {"societies":[names...]}.
func (h *Handler) HandleReorderSocieties(w http.ResponseWriter, r *http.Request) {
	key, id, aerr := societyScope(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in reorderSocietiesInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	names := make([]string, len(in.Societies))
	for i, n := range in.Societies {
		names[i] = normalize.Name(n)
	}
	plan, err := ordering.Plan("societies", names)
	if err != nil {
		h.ErrLog.Respond(w, r, "societies", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reorder societies")
	defer cancel()

	sa, err := areastore.New(h.DB).ReorderSocieties(ctx, key, id, plan)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("societies reordered", zap.String("area_key", key), zap.Int64("sub_area_id", id), zap.Int("count", len(plan)))
	h.AuditLog.Admin(ctx, r, audit.EventSocietiesReordered, resourceID(key, id), map[string]string{"count": strconv.Itoa(len(plan))})
	respond.Message(w, "Societies reordered", sa.Societies)
}
