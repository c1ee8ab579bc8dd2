// internal/app/features/areas/reorder.go
package areas

import (
	"net/http"
	"strconv"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleReorder handles PUT /areas/reorder {"areaKeys":[...]}.
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var in reorderAreasInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	keys := make([]string, len(in.AreaKeys))
	for i, k := range in.AreaKeys {
		keys[i] = normalize.AreaKey(k)
	}
	plan, err := ordering.Plan("areaKeys", keys)
	if err != nil {
		h.ErrLog.Respond(w, r, "areas", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "reorder areas")
	defer cancel()

	if err := areastore.New(h.DB).Reorder(ctx, plan); err != nil {
		h.ErrLog.Respond(w, r, "areas", err)
		return
	}

	h.Log.Info("areas reordered", zap.Int("count", len(plan)))
	h.AuditLog.Admin(ctx, r, audit.EventAreasReordered, "", map[string]string{"count": strconv.Itoa(len(plan))})
	respond.Message(w, "Areas reordered", nil)
}

// HandleReorderSubAreas handles PUT /areas/{key}/subareas/reorder
// {"subAreas":[ids...]} and returns the area with its new sub-area order.
func (h *Handler) HandleReorderSubAreas(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")

	var in reorderSubAreasInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	plan, err := ordering.Plan("subAreas", formatIDs(in.SubAreas))
	if err != nil {
		h.ErrLog.Respond(w, r, "sub-areas", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reorder sub-areas")
	defer cancel()

	a, err := areastore.New(h.DB).ReorderSubAreas(ctx, key, plan)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("sub-areas reordered", zap.String("area_key", key), zap.Int("count", len(plan)))
	h.AuditLog.Admin(ctx, r, audit.EventSubAreasReordered, key, map[string]string{"count": strconv.Itoa(len(plan))})
	respond.Message(w, "Sub-areas reordered", a.SubAreas)
}
