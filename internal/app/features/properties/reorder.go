// internal/app/features/properties/reorder.go
package properties

import (
	"net/http"
	"strconv"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleReorder handles PUT /properties/reorder.
//
// Body: {"propertyIds":["…","…"],"areaKey":"dha"}. Each listed property gets
// order := its index. With areaKey every id must belong to that area.
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.AreaKey = normalize.AreaKey(in.AreaKey)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	plan, err := ordering.Plan("propertyIds", ordering.HexIDs(in.PropertyIDs))
	if err != nil {
		h.ErrLog.Respond(w, r, "properties", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "reorder properties")
	defer cancel()

	if err := propertystore.New(h.DB).Reorder(ctx, plan, in.AreaKey); err != nil {
		h.ErrLog.Respond(w, r, "properties", err)
		return
	}

	h.Log.Info("properties reordered", zap.Int("count", len(plan)), zap.String("area_key", in.AreaKey))
	details := map[string]string{"count": strconv.Itoa(len(plan))}
	if in.AreaKey != "" {
		details["area_key"] = in.AreaKey
	}
	h.AuditLog.Admin(ctx, r, audit.EventPropertiesReordered, in.AreaKey, details)
	respond.Message(w, "Properties reordered", nil)
}
