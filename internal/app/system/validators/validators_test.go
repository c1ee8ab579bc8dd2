package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/validators"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"properties", "areas", "slider_images", "contacts", "audit_events"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	now := time.Now()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{
			name: "valid property",
			coll: "properties",
			doc: bson.M{
				"title": "Corner Villa", "price": "4.5 Cr", "location": "Phase 6", "area_key": "dha",
				"listing_url": "https://example.com/a", "secondary_listing_url": "http://example.com/b",
				"beds": 5, "baths": 6, "order": 0, "is_active": true, "created_at": now,
			},
		},
		{
			name:    "property missing links",
			coll:    "properties",
			doc:     bson.M{"title": "x", "price": "1", "location": "y", "area_key": "dha", "order": 0, "is_active": true},
			wantErr: true,
		},
		{
			name: "property with non-http link",
			coll: "properties",
			doc: bson.M{
				"title": "x", "price": "1", "location": "y", "area_key": "dha",
				"listing_url": "ftp://example.com", "secondary_listing_url": "https://example.com",
				"order": 0, "is_active": true,
			},
			wantErr: true,
		},
		{
			name: "valid area",
			coll: "areas",
			doc:  bson.M{"key": "bahria-town", "name": "Bahria Town", "order": 1, "version": int64(0), "sub_areas": bson.A{}},
		},
		{
			name:    "area with bad key",
			coll:    "areas",
			doc:     bson.M{"key": "Bahria Town", "name": "Bahria Town", "order": 1, "version": 0},
			wantErr: true,
		},
		{
			name: "valid slider image",
			coll: "slider_images",
			doc:  bson.M{"image_url": "/files/slider/a.jpg", "order": 0, "is_active": true},
		},
		{
			name:    "slider image missing url",
			coll:    "slider_images",
			doc:     bson.M{"order": 0, "is_active": true},
			wantErr: true,
		},
		{
			name: "valid contact",
			coll: "contacts",
			doc: bson.M{
				"name": "Sana", "email": "sana@example.com", "message": "Interested",
				"status": "in-progress", "priority": "high", "is_read": false,
			},
		},
		{
			name: "contact with unknown status",
			coll: "contacts",
			doc: bson.M{
				"name": "Sana", "email": "sana@example.com", "message": "Interested",
				"status": "archived", "priority": "high", "is_read": false,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("insert failed: %v", err)
			}
		})
	}
}
