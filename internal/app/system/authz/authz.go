// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/query"
)

// Actor returns the current username (or "anonymous"), its lowercased role
// (or "visitor"), and whether a verified identity is present.
func Actor(r *http.Request) (username, role string, ok bool) {
	id, ok := auth.CurrentIdentity(r)
	if !ok || id.Username == "" {
		return "anonymous", "visitor", false
	}
	return id.Username, strings.ToLower(id.Role), true
}

// IsAdmin reports whether the current request carries an admin identity.
func IsAdmin(r *http.Request) bool {
	_, role, ok := Actor(r)
	return ok && role == auth.RoleAdmin
}

// HasAnyRole reports whether the current identity has any of the given roles.
// Returns false if no identity is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	_, cur, ok := Actor(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// IncludeInactive reports whether a list should include inactive records.
// Only an admin can ask for them, with ?includeInactive=true; everyone else
// sees active records only.
func IncludeInactive(r *http.Request) bool {
	if !IsAdmin(r) {
		return false
	}
	v, err := strconv.ParseBool(query.Get(r, "includeInactive"))
	return err == nil && v
}
