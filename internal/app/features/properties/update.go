// internal/app/features/properties/update.go
package properties

import (
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /properties/{id}. Only the supplied fields change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, aerr := propertyID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in updateInput
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update property")
	defer cancel()

	p, err := propertystore.New(h.DB).Update(ctx, oid, set)
	if err != nil {
		h.ErrLog.Respond(w, r, "property", err)
		return
	}

	h.Log.Info("property updated", zap.String("property_id", p.ID.Hex()), zap.Int("fields", len(set)))
	h.AuditLog.Admin(ctx, r, audit.EventPropertyUpdated, p.ID.Hex(), nil)
	respond.Message(w, "Property updated", p)
}
