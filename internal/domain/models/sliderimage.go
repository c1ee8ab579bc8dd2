package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SliderImage is one slide of the public home page carousel.
type SliderImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	ImageURL  string             `bson:"image_url" json:"imageUrl"`
	Alt       string             `bson:"alt,omitempty" json:"alt,omitempty"`
	Order     int                `bson:"order" json:"order"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
