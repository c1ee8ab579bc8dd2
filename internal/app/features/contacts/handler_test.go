package contacts_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/features/contacts"
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	contactstore "github.com/dalemusser/estatehub/internal/app/store/contacts"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	router http.Handler
	token  string
	fx     *testutil.Fixtures
}

func setup(t *testing.T, limiter *ratelimit.Limiter) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := testutil.NewAuthenticator(t)
	h := contacts.NewHandler(db, a, limiter, nil, errorsfeature.NewErrorLogger(zap.NewNop(), true), zap.NewNop())
	return env{router: contacts.Routes(h), token: testutil.AdminToken(t, a), fx: testutil.NewFixtures(t, db)}
}

func (e env) admin(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	return testutil.WithBearer(testutil.NewJSONRequest(t, method, target, body), e.token)
}

func (e env) get(t *testing.T, id string) models.Contact {
	t.Helper()
	rec := testutil.Serve(e.router, e.admin(t, "GET", "/"+id, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var c models.Contact
	testutil.DecodeEnvelope(t, rec, &c)
	return c
}

func TestSubmit_Public(t *testing.T) {
	e := setup(t, nil)

	rec := testutil.Serve(e.router, testutil.NewJSONRequest(t, "POST", "/", map[string]any{
		"name":     "  Sana <b>Khan</b> ",
		"email":    " Sana@Example.com ",
		"phone":    "+92 300 1234567",
		"interest": "DHA Phase 6",
		"message":  "I would like to visit <script>alert(1)</script>this weekend.",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var out struct {
		ID string `json:"id"`
	}
	env := testutil.DecodeEnvelope(t, rec, &out)
	if env.Message == "" {
		t.Error("expected a thank-you message")
	}

	c := e.get(t, out.ID)
	if c.Name != "Sana Khan" {
		t.Errorf("Name = %q, want tags stripped", c.Name)
	}
	if c.Email != "sana@example.com" {
		t.Errorf("Email = %q", c.Email)
	}
	if c.Status != models.ContactStatusNew || c.Priority != models.PriorityMedium || c.IsRead {
		t.Errorf("defaults = %s/%s/read=%v", c.Status, c.Priority, c.IsRead)
	}
}

func TestSubmit_Validation(t *testing.T) {
	e := setup(t, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "a@example.com", "message": "hi"}},
		{"bad email", map[string]any{"name": "A", "email": "nope", "message": "hi"}},
		{"markup only message", map[string]any{"name": "A", "email": "a@example.com", "message": "<b></b>"}},
		{"unknown field", map[string]any{"name": "A", "email": "a@example.com", "message": "hi", "status": "closed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Serve(e.router, testutil.NewJSONRequest(t, "POST", "/", tt.body))
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestSubmit_RateLimited(t *testing.T) {
	e := setup(t, ratelimit.New(1, time.Minute))
	body := map[string]any{"name": "A", "email": "a@example.com", "message": "hi"}

	testutil.AssertStatus(t, testutil.Serve(e.router, testutil.NewJSONRequest(t, "POST", "/", body)), http.StatusCreated)
	testutil.AssertStatus(t, testutil.Serve(e.router, testutil.NewJSONRequest(t, "POST", "/", body)), http.StatusTooManyRequests)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	id := e.fx.CreateContact(ctx, "Lead", models.ContactStatusNew).ID.Hex()

	for _, rt := range []struct{ method, target string }{
		{"GET", "/"},
		{"GET", "/stats"},
		{"GET", "/" + id},
		{"PUT", "/" + id},
		{"PUT", "/" + id + "/mark-read"},
		{"DELETE", "/" + id},
	} {
		rec := testutil.Serve(e.router, testutil.NewRequest(rt.method, rt.target))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", rt.method, rt.target, rec.Code)
		}
	}
}

func TestGet_DoesNotMarkRead(t *testing.T) {
	e := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	id := e.fx.CreateContact(ctx, "Lead", models.ContactStatusNew).ID.Hex()

	e.get(t, id)
	if c := e.get(t, id); c.IsRead {
		t.Error("GET marked the contact read")
	}

	rec := testutil.Serve(e.router, e.admin(t, "PUT", "/"+id+"/mark-read", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	c := e.get(t, id)
	if !c.IsRead || c.ReadAt == nil {
		t.Errorf("after mark-read: isRead=%v readAt=%v", c.IsRead, c.ReadAt)
	}

	rec = testutil.Serve(e.router, e.admin(t, "PUT", "/"+id+"/mark-read", map[string]any{"isRead": false}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if c := e.get(t, id); c.IsRead {
		t.Error("expected contact unread again")
	}

	rec = testutil.Serve(e.router, e.admin(t, "GET", "/not-an-id", nil))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	rec = testutil.Serve(e.router, e.admin(t, "GET", "/507f1f77bcf86cd799439011", nil))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestUpdate_AnyStatusTransition(t *testing.T) {
	e := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	id := e.fx.CreateContact(ctx, "Lead", models.ContactStatusNew).ID.Hex()

	for _, status := range []string{"closed", "new", "in-progress", "contacted", "closed", "in-progress"} {
		rec := testutil.Serve(e.router, e.admin(t, "PUT", "/"+id, map[string]any{"status": status}))
		testutil.AssertStatus(t, rec, http.StatusOK)
		var c models.Contact
		testutil.DecodeEnvelope(t, rec, &c)
		if c.Status != status {
			t.Errorf("status = %s, want %s", c.Status, status)
		}
	}

	rec := testutil.Serve(e.router, e.admin(t, "PUT", "/"+id, map[string]any{"priority": "high", "notes": "Call back Monday"}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	c := e.get(t, id)
	if c.Priority != "high" || c.Notes != "Call back Monday" {
		t.Errorf("priority=%s notes=%q", c.Priority, c.Notes)
	}

	for name, body := range map[string]map[string]any{
		"unknown status":   {"status": "archived"},
		"unknown priority": {"priority": "urgent"},
		"empty":            {},
	} {
		t.Run(name, func(t *testing.T) {
			rec := testutil.Serve(e.router, e.admin(t, "PUT", "/"+id, body))
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestListAndStats(t *testing.T) {
	e := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateContact(ctx, "Alpha", models.ContactStatusNew)
	e.fx.CreateContact(ctx, "Beta", models.ContactStatusNew)
	closed := e.fx.CreateContact(ctx, "Gamma", models.ContactStatusClosed)

	rec := testutil.Serve(e.router, e.admin(t, "GET", "/?status=new", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var items []models.Contact
	env := testutil.DecodeEnvelope(t, rec, &items)
	if len(items) != 2 || env.Pagination == nil || env.Pagination.Total != 2 {
		t.Fatalf("status=new returned %d items, pagination %+v", len(items), env.Pagination)
	}

	rec = testutil.Serve(e.router, e.admin(t, "GET", "/?q=gam", nil))
	testutil.DecodeEnvelope(t, rec, &items)
	if len(items) != 1 || items[0].ID != closed.ID {
		t.Errorf("search returned %v", items)
	}

	testutil.AssertStatus(t, testutil.Serve(e.router, e.admin(t, "GET", "/?status=archived", nil)), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.Serve(e.router, e.admin(t, "GET", "/?isRead=maybe", nil)), http.StatusBadRequest)

	rec = testutil.Serve(e.router, e.admin(t, "GET", "/stats", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var st contactstore.Stats
	testutil.DecodeEnvelope(t, rec, &st)
	if st.Total != 3 || st.Unread != 3 || st.ByStatus["new"] != 2 || st.ByStatus["closed"] != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDelete(t *testing.T) {
	e := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	id := e.fx.CreateContact(ctx, "Lead", models.ContactStatusNew).ID.Hex()

	testutil.AssertStatus(t, testutil.Serve(e.router, e.admin(t, "DELETE", "/"+id, nil)), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(e.router, e.admin(t, "DELETE", "/"+id, nil)), http.StatusNotFound)
}
