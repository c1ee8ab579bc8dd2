// internal/app/features/authapi/logout.go
package authapi

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
)

// HandleLogout handles POST /auth/logout. Tokens are stateless, so this only
// records the sign-out; the client discards its token.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		respond.Error(w, auth.ErrUnauthorized, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout")
	defer cancel()

	h.Auth.Logout(ctx, id)
	h.AuditLog.Logout(ctx, r, id.Username)
	respond.Message(w, "Logged out", nil)
}
