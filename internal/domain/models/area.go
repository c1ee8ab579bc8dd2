// internal/domain/models/area.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Area is the aggregate root for a geographic grouping. SubAreas and their
// Societies are embedded and always loaded and saved together with the Area.
// Version is bumped on every write of the embedded tree so concurrent edits
// of the same Area are detected instead of overwriting each other.
type Area struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key         string             `bson:"key" json:"key"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Order       int                `bson:"order" json:"order"`
	SubAreas    []SubArea          `bson:"sub_areas" json:"subAreas"`
	Version     int64              `bson:"version" json:"version"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SubArea is a named subdivision of an Area. ID is unique only within its
// parent and is usually assigned from the clock when the caller omits it.
type SubArea struct {
	ID          int64     `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	MapImage    string    `bson:"map_image,omitempty" json:"mapImage,omitempty"`
	Order       int       `bson:"order" json:"order"`
	Societies   []Society `bson:"societies" json:"societies"`
}

// Society is a residential complex inside a SubArea, identified by its name.
type Society struct {
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	MapImage    string   `bson:"map_image,omitempty" json:"mapImage,omitempty"`
	Amenities   []string `bson:"amenities" json:"amenities"`
	Contact     string   `bson:"contact,omitempty" json:"contact,omitempty"`
	Order       int      `bson:"order" json:"order"`
}

// FindSubArea returns the index of the sub-area with the given id, or -1.
func (a *Area) FindSubArea(id int64) int {
	for i := range a.SubAreas {
		if a.SubAreas[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSociety returns the index of the society with the given name, or -1.
func (s *SubArea) FindSociety(name string) int {
	for i := range s.Societies {
		if s.Societies[i].Name == name {
			return i
		}
	}
	return -1
}
