// internal/domain/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a single listing shown in the public catalog.
// AreaKey references Area.Key; the reference is checked when an area is
// deleted, not when the property is written.
type Property struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Price               string             `bson:"price" json:"price"` // display string, e.g. "1.25 Cr"
	Location            string             `bson:"location" json:"location"`
	Beds                int                `bson:"beds" json:"beds"`
	Baths               int                `bson:"baths" json:"baths"`
	AreaSize            string             `bson:"area_size" json:"areaSize"`
	AreaKey             string             `bson:"area_key" json:"areaKey"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Images              []string           `bson:"images" json:"images"`
	ListingURL          string             `bson:"listing_url" json:"listingUrl"`
	SecondaryListingURL string             `bson:"secondary_listing_url" json:"secondaryListingUrl"`
	Features            []string           `bson:"features" json:"features"`
	Order               int                `bson:"order" json:"order"`
	IsActive            bool               `bson:"is_active" json:"isActive"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}
