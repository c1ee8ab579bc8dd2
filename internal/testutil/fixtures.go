package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Calling it again on the same request adds to the existing parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateArea creates an area with no sub-areas.
func (f *Fixtures) CreateArea(ctx context.Context, key, name string, order int) models.Area {
	f.t.Helper()

	now := time.Now().UTC()
	area := models.Area{
		ID:        primitive.NewObjectID(),
		Key:       key,
		Name:      name,
		NameCI:    text.Fold(name),
		Order:     order,
		SubAreas:  []models.SubArea{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("areas").InsertOne(ctx, area); err != nil {
		f.t.Fatalf("failed to create test area: %v", err)
	}
	return area
}

// CreateAreaWithSubAreas creates an area holding the given sub-areas.
func (f *Fixtures) CreateAreaWithSubAreas(ctx context.Context, key, name string, subs []models.SubArea) models.Area {
	f.t.Helper()

	now := time.Now().UTC()
	area := models.Area{
		ID:        primitive.NewObjectID(),
		Key:       key,
		Name:      name,
		NameCI:    text.Fold(name),
		SubAreas:  subs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("areas").InsertOne(ctx, area); err != nil {
		f.t.Fatalf("failed to create test area: %v", err)
	}
	return area
}

// CreateProperty creates an active-or-inactive property in the given area.
func (f *Fixtures) CreateProperty(ctx context.Context, title, areaKey string, order int, active bool) models.Property {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Property{
		ID:                  primitive.NewObjectID(),
		Title:               title,
		Price:               "1.5 Cr",
		Location:            "Test Location",
		Beds:                3,
		Baths:               2,
		AreaSize:            "10 Marla",
		AreaKey:             areaKey,
		Images:              []string{},
		ListingURL:          "https://listings.example.com/" + title,
		SecondaryListingURL: "https://maps.example.com/" + title,
		Features:            []string{},
		Order:               order,
		IsActive:            active,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if _, err := f.db.Collection("properties").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test property: %v", err)
	}
	return p
}

// CreateSliderImage creates a slider image.
func (f *Fixtures) CreateSliderImage(ctx context.Context, title string, order int, active bool) models.SliderImage {
	f.t.Helper()

	now := time.Now().UTC()
	img := models.SliderImage{
		ID:        primitive.NewObjectID(),
		Title:     title,
		ImageURL:  "/files/slider/" + title + ".jpg",
		Order:     order,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("slider_images").InsertOne(ctx, img); err != nil {
		f.t.Fatalf("failed to create test slider image: %v", err)
	}
	return img
}

// CreateContact creates a contact with the given status and medium priority.
func (f *Fixtures) CreateContact(ctx context.Context, name, status string) models.Contact {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Contact{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     "lead@example.com",
		Phone:     "+92 300 0000000",
		Message:   "Interested in a plot",
		Status:    status,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("contacts").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test contact: %v", err)
	}
	return c
}
