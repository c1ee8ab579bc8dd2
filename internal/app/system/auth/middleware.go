package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
)

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified identity stored by the middleware.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithTestIdentity returns a copy of r carrying id, for handler tests.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(WithIdentity(r.Context(), id))
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// Optional loads the identity when a valid bearer token is present and
// never rejects the request.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := BearerToken(r); tok != "" {
			if id, err := a.Verify(tok); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests without a valid bearer token (401) and
// requests whose identity lacks every allowed role (403).
func (a *Authenticator) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := a.Verify(BearerToken(r))
			if err != nil {
				respond.Error(w, apperr.Unauthorized(""), "")
				return
			}
			if _, has := set[strings.ToLower(id.Role)]; !has {
				respond.Error(w, apperr.Forbidden(""), "")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin is RequireRole(RoleAdmin).
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireRole(RoleAdmin)(next)
}
