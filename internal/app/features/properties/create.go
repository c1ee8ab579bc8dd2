// internal/app/features/properties/create.go
package properties

import (
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /properties. Without an explicit order the new
// property is appended after every existing one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create property")
	defer cancel()

	p, err := propertystore.New(h.DB).Create(ctx, in.model(), in.Order)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create property failed", err, "Could not create property.")
		return
	}

	h.Log.Info("property created", zap.String("property_id", p.ID.Hex()), zap.String("area_key", p.AreaKey))
	h.AuditLog.Admin(ctx, r, audit.EventPropertyCreated, p.ID.Hex(), map[string]string{"title": p.Title})
	respond.Created(w, "Property created", p)
}
