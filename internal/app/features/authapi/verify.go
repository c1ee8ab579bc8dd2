// internal/app/features/authapi/verify.go
package authapi

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
)

// HandleVerify handles GET|POST /auth/verify behind RequireAdmin and echoes
// the verified identity.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		respond.Error(w, auth.ErrUnauthorized, "")
		return
	}
	respond.OK(w, map[string]any{"valid": true, "user": viewOf(id)})
}
