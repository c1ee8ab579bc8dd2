package workers

import (
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.uber.org/zap"
)

func TestAuditRetention_Prune(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{now.AddDate(0, 0, -40), now.AddDate(0, 0, -31), now.AddDate(0, 0, -1)} {
		if err := store.Log(ctx, audit.Event{Timestamp: ts, Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	w := NewAuditRetention(store, zap.NewNop(), 0, 30*24*time.Hour)
	w.now = func() time.Time { return now }

	if w.interval != DefaultRetentionInterval {
		t.Errorf("interval = %v, want default", w.interval)
	}
	if n := w.prune(); n != 2 {
		t.Errorf("prune = %d, want 2", n)
	}
	if n := w.prune(); n != 0 {
		t.Errorf("second prune = %d, want 0", n)
	}
}

func TestAuditRetention_StartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	w := NewAuditRetention(audit.New(db), zap.NewNop(), time.Hour, 24*time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}
