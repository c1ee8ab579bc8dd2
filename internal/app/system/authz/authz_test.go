package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
)

func TestActor(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	name, role, ok := authz.Actor(req)
	if ok || name != "anonymous" || role != "visitor" {
		t.Errorf("Actor() without identity = (%q, %q, %v)", name, role, ok)
	}

	req = auth.WithTestIdentity(req, auth.Identity{Username: "owner", Role: "Admin"})
	name, role, ok = authz.Actor(req)
	if !ok || name != "owner" || role != "admin" {
		t.Errorf("Actor() = (%q, %q, %v), want (owner, admin, true)", name, role, ok)
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		id   *auth.Identity
		want bool
	}{
		{"no identity", nil, false},
		{"admin", &auth.Identity{Username: "a", Role: "admin"}, true},
		{"other role", &auth.Identity{Username: "a", Role: "editor"}, false},
		{"empty username", &auth.Identity{Role: "admin"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.id != nil {
				req = auth.WithTestIdentity(req, *tt.id)
			}
			if got := authz.IsAdmin(req); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	req := auth.WithTestIdentity(httptest.NewRequest("GET", "/test", nil),
		auth.Identity{Username: "a", Role: "admin"})

	if !authz.HasAnyRole(req, "editor", " ADMIN ") {
		t.Error("expected HasAnyRole to match admin")
	}
	if authz.HasAnyRole(req, "editor") {
		t.Error("expected HasAnyRole to reject editor")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/test", nil), "admin") {
		t.Error("expected HasAnyRole to be false without identity")
	}
}

func TestIncludeInactive(t *testing.T) {
	admin := auth.Identity{Username: "a", Role: "admin"}
	tests := []struct {
		name   string
		target string
		admin  bool
		want   bool
	}{
		{"public ignores flag", "/p?includeInactive=true", false, false},
		{"admin without flag", "/p", true, false},
		{"admin with flag", "/p?includeInactive=true", true, true},
		{"admin with 1", "/p?includeInactive=1", true, true},
		{"admin with garbage", "/p?includeInactive=maybe", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.admin {
				req = auth.WithTestIdentity(req, admin)
			}
			if got := authz.IncludeInactive(req); got != tt.want {
				t.Errorf("IncludeInactive() = %v, want %v", got, tt.want)
			}
		})
	}
}
