package auditlog_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/features/auditlog"
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	router http.Handler
	token  string
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := audit.New(db)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Timestamp: base, Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Actor: "admin", Success: true},
		{Timestamp: base.Add(time.Hour), Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, Actor: "mallory", FailureReason: "invalid credentials"},
		{Timestamp: base.Add(24 * time.Hour), Category: audit.CategoryAdmin, EventType: audit.EventAreaCreated, Actor: "admin", ResourceID: "dha", Success: true},
		{Timestamp: base.Add(48 * time.Hour), Category: audit.CategoryAdmin, EventType: audit.EventPropertyDeleted, Actor: "admin", Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	a := testutil.NewAuthenticator(t)
	h := auditlog.NewHandler(db, a, errorsfeature.NewErrorLogger(zap.NewNop(), true), zap.NewNop())
	return env{router: auditlog.Routes(h), token: testutil.AdminToken(t, a)}
}

func (e env) list(t *testing.T, target string) ([]audit.Event, int64) {
	t.Helper()
	rec := testutil.Serve(e.router, testutil.WithBearer(testutil.NewRequest("GET", target), e.token))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var events []audit.Event
	env := testutil.DecodeEnvelope(t, rec, &events)
	if env.Pagination == nil {
		t.Fatal("expected pagination block")
	}
	return events, env.Pagination.Total
}

func TestServeList_RequiresAdmin(t *testing.T) {
	e := setup(t)
	rec := testutil.Serve(e.router, testutil.NewRequest("GET", "/"))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestServeList_NewestFirst(t *testing.T) {
	e := setup(t)
	events, total := e.list(t, "/")
	if total != 4 || len(events) != 4 {
		t.Fatalf("got %d events, total %d", len(events), total)
	}
	if events[0].EventType != audit.EventPropertyDeleted || events[3].EventType != audit.EventLoginSuccess {
		t.Errorf("order = %s ... %s", events[0].EventType, events[3].EventType)
	}

	events, total = e.list(t, "/?limit=3&page=2")
	if total != 4 || len(events) != 1 || events[0].EventType != audit.EventLoginSuccess {
		t.Errorf("page 2 = %v (total %d)", events, total)
	}
}

func TestServeList_Filters(t *testing.T) {
	e := setup(t)

	tests := []struct {
		query string
		want  int64
	}{
		{"?category=auth", 2},
		{"?category=admin", 2},
		{"?eventType=login_failed", 1},
		{"?actor=admin", 3},
		{"?success=false", 1},
		{"?since=2026-03-11", 2},
		{"?until=2026-03-10", 2},
		{"?since=2026-03-10T12:30:00Z&until=2026-03-11T12:00:00Z", 2},
		{"?category=admin&since=2026-03-12", 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if _, total := e.list(t, "/"+tt.query); total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestServeList_BadFilters(t *testing.T) {
	e := setup(t)
	for _, q := range []string{"?category=security", "?success=maybe", "?since=yesterday", "?until=03/10/2026"} {
		t.Run(q, func(t *testing.T) {
			rec := testutil.Serve(e.router, testutil.WithBearer(testutil.NewRequest("GET", "/"+q), e.token))
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
		})
	}
}
