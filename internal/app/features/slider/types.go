// internal/app/features/slider/types.go
package slider

import (
	"net/http"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createInput struct {
	Title    string `json:"title" validate:"max=200" label:"Title"`
	ImageURL string `json:"imageUrl" validate:"required,max=500" label:"Image URL"`
	Alt      string `json:"alt" validate:"max=300" label:"Alt text"`
	Order    *int   `json:"order" validate:"omitempty,gte=0" label:"Order"`
	IsActive *bool  `json:"isActive" label:"Active"`
}

func (in *createInput) normalize() {
	in.Title = normalize.Name(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Alt = normalize.Name(in.Alt)
}

func (in createInput) model() models.SliderImage {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return models.SliderImage{
		Title:    in.Title,
		ImageURL: in.ImageURL,
		Alt:      in.Alt,
		IsActive: active,
	}
}

type updateInput struct {
	Title    *string `json:"title" validate:"omitempty,max=200" label:"Title"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,min=1,max=500" label:"Image URL"`
	Alt      *string `json:"alt" validate:"omitempty,max=300" label:"Alt text"`
	Order    *int    `json:"order" validate:"omitempty,gte=0" label:"Order"`
	IsActive *bool   `json:"isActive" label:"Active"`
}

func (in *updateInput) normalize() {
	if in.Title != nil {
		*in.Title = normalize.Name(*in.Title)
	}
	if in.ImageURL != nil {
		*in.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Alt != nil {
		*in.Alt = normalize.Name(*in.Alt)
	}
}

func (in updateInput) set() bson.M {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.ImageURL != nil {
		set["image_url"] = *in.ImageURL
	}
	if in.Alt != nil {
		set["alt"] = *in.Alt
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	return set
}

type reorderInput struct {
	ImageIDs []string `json:"imageIds"`
}

func imageID(r *http.Request) (primitive.ObjectID, *apperr.Error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("id", "Invalid slider image ID.")
	}
	return oid, nil
}
