package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Test credentials accepted by NewAuthenticator.
const (
	AdminUsername = "admin"
	AdminPassword = "correct horse battery staple"
	TestSecret    = "test-secret-test-secret-test-secret!"
)

// AdminIdentity returns an admin identity valid for an hour.
func AdminIdentity() auth.Identity {
	now := time.Now().UTC()
	return auth.Identity{
		Username:  AdminUsername,
		Role:      auth.RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

// NewAuthenticator returns an Authenticator for AdminUsername/AdminPassword.
// The hash uses the minimum bcrypt cost to keep tests fast.
func NewAuthenticator(t *testing.T) *auth.Authenticator {
	t.Helper()
	hash := minCostHash(t, AdminPassword)
	a, err := auth.New(auth.Config{
		Username:     AdminUsername,
		PasswordHash: hash,
		Secret:       TestSecret,
		Issuer:       "estatehub-test",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	return a
}

// AdminToken issues a bearer token for the admin.
func AdminToken(t *testing.T, a *auth.Authenticator) string {
	t.Helper()
	tok, _, err := a.Issue(AdminUsername, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok.Value
}

// WithAdmin adds an admin identity to the request context, bypassing the
// bearer token middleware.
func WithAdmin(r *http.Request) *http.Request {
	return auth.WithTestIdentity(r, AdminIdentity())
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request with body marshalled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAdminRequest creates a JSON request with an admin identity in context.
func NewAdminRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	return WithAdmin(NewJSONRequest(t, method, target, body))
}

// DecodeEnvelope decodes the response envelope; when data is non-nil the
// envelope's data field is decoded into it.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) respond.Envelope {
	t.Helper()
	var raw struct {
		respond.Envelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode envelope data: %v (data=%s)", err, raw.Data)
		}
	}
	env := raw.Envelope
	env.Data = nil
	return env
}

// AssertStatus fails the test when the recorder's status differs.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status code: got %d, want %d (body=%s)", rec.Code, want, rec.Body.String())
	}
}

// WithBearer sets "Authorization: Bearer <token>" on r and returns it.
func WithBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
