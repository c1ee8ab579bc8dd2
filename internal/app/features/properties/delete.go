// internal/app/features/properties/delete.go
package properties

import (
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /properties/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, aerr := propertyID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete property")
	defer cancel()

	n, err := propertystore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete property failed", err, "Could not delete property.")
		return
	}
	if n == 0 {
		respond.Error(w, apperr.NotFound("property"), "")
		return
	}

	h.Log.Info("property deleted", zap.String("property_id", oid.Hex()))
	h.AuditLog.Admin(ctx, r, audit.EventPropertyDeleted, oid.Hex(), nil)
	respond.Message(w, "Property deleted", nil)
}
