// internal/app/features/areas/create.go
package areas

import (
	"errors"
	"net/http"

	areastore "github.com/dalemusser/estatehub/internal/app/store/areas"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /areas. The body may carry an initial list of
// sub-areas; without an explicit order the area is appended.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in areaInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create area")
	defer cancel()

	a, err := areastore.New(h.DB).Create(ctx, in.model(), in.Order)
	if err != nil {
		if errors.Is(err, areastore.ErrDuplicateKey) {
			respond.Error(w, apperr.Conflict("An area with key "+in.Key+" already exists."), "")
			return
		}
		h.ErrLog.Respond(w, r, "area", err)
		return
	}

	h.Log.Info("area created", zap.String("area_key", a.Key), zap.Int("sub_areas", len(a.SubAreas)))
	h.AuditLog.Admin(ctx, r, audit.EventAreaCreated, a.Key, map[string]string{"name": a.Name})
	respond.Created(w, "Area created", a)
}
