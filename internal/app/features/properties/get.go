// internal/app/features/properties/get.go
package properties

import (
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func propertyID(r *http.Request) (primitive.ObjectID, *apperr.Error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("id", "Invalid property ID.")
	}
	return oid, nil
}

// ServeGet handles GET /properties/{id}. Inactive properties are only
// visible to an admin.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	oid, aerr := propertyID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get property")
	defer cancel()

	p, err := propertystore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "property", err)
		return
	}
	if !p.IsActive && !authz.IsAdmin(r) {
		respond.Error(w, apperr.NotFound("property"), "")
		return
	}
	respond.OK(w, p)
}
