// internal/app/features/areas/delete.go
package areas

import (
	"net/http"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /areas/{key}. An area still referenced by an
// active property answers 409.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	key := areaKeyParam(r, "key")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete area")
	defer cancel()

	if err := areastore.New(h.DB).Delete(ctx, key); err != nil {
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("area deleted", zap.String("area_key", key))
	h.AuditLog.Admin(ctx, r, audit.EventAreaDeleted, key, nil)
	respond.Message(w, "Area deleted", nil)
}
