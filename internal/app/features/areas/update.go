// internal/app/features/areas/update.go
package areas

import (
	"net/http"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /areas/{key}. The key itself cannot change
// because properties reference it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")

	var in areaUpdateInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	set := in.set()
	if len(set) == 0 {
		respond.Error(w, apperr.Invalid("body", "No fields to update."), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update area")
	defer cancel()

	a, err := areastore.New(h.DB).Update(ctx, key, set)
	if err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("area updated", zap.String("area_key", key))
	h.AuditLog.Admin(ctx, r, audit.EventAreaUpdated, key, nil)
	respond.Message(w, "Area updated", a)
}
