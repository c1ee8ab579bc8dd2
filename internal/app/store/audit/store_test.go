package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/testutil"
)

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventPropertyCreated,
		Actor:      "admin",
		ResourceID: "507f1f77bcf86cd799439011",
		IP:         "192.168.1.1",
		UserAgent:  "TestBrowser/1.0",
		Success:    true,
	}
	if err := store.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.Query(ctx, audit.QueryFilter{ResourceID: "507f1f77bcf86cd799439011"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be auto-set")
	}
	if events[0].Actor != "admin" {
		t.Errorf("Actor = %q", events[0].Actor)
	}
}

func TestStore_QueryAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().Add(-time.Hour)
	for i, et := range []string{audit.EventLoginSuccess, audit.EventLoginFailed, audit.EventLoginFailed, audit.EventAreaCreated} {
		cat := audit.CategoryAuth
		if et == audit.EventAreaCreated {
			cat = audit.CategoryAdmin
		}
		if err := store.Log(ctx, audit.Event{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Category:  cat,
			EventType: et,
			Success:   et != audit.EventLoginFailed,
		}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	authEvents, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(authEvents) != 3 {
		t.Errorf("auth events = %d, want 3", len(authEvents))
	}
	if !authEvents[0].Timestamp.After(authEvents[2].Timestamp) {
		t.Error("expected newest first")
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{EventType: audit.EventLoginFailed})
	if err != nil {
		t.Fatalf("CountByFilter: %v", err)
	}
	if n != 2 {
		t.Errorf("failed login count = %d, want 2", n)
	}

	failed, err := store.GetFailedLogins(ctx, base.Add(-time.Minute), 10)
	if err != nil {
		t.Fatalf("GetFailedLogins: %v", err)
	}
	if len(failed) != 2 {
		t.Errorf("failed logins = %d, want 2", len(failed))
	}

	page, err := store.Query(ctx, audit.QueryFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Query page: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	recent, err := store.GetRecent(ctx, 1)
	if err != nil || len(recent) != 1 || recent[0].EventType != audit.EventAreaCreated {
		t.Errorf("GetRecent = %v, %v", recent, err)
	}
}

func TestDeleteBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)

	now := time.Now().UTC()
	for _, age := range []time.Duration{100 * 24 * time.Hour, 91 * 24 * time.Hour, time.Hour} {
		if err := store.Log(ctx, audit.Event{Timestamp: now.Add(-age), Category: audit.CategoryAdmin, EventType: audit.EventAreaUpdated}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	n, err := store.DeleteBefore(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	left, _ := store.CountByFilter(ctx, audit.QueryFilter{})
	if left != 1 {
		t.Errorf("remaining = %d, want 1", left)
	}
}
