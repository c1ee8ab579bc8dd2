// internal/app/features/properties/types.go
package properties

import (
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// createInput is the POST body for a new property.
type createInput struct {
	Title               string   `json:"title" validate:"required,max=200" label:"Title"`
	Price               string   `json:"price" validate:"required,max=50" label:"Price"`
	Location            string   `json:"location" validate:"required,max=200" label:"Location"`
	Beds                int      `json:"beds" validate:"gte=0,lte=100" label:"Beds"`
	Baths               int      `json:"baths" validate:"gte=0,lte=100" label:"Baths"`
	AreaSize            string   `json:"areaSize" validate:"max=50" label:"Area size"`
	AreaKey             string   `json:"areaKey" validate:"required,areakey" label:"Area"`
	Description         string   `json:"description" validate:"max=20000" label:"Description"`
	Images              []string `json:"images" validate:"max=30,dive,required,max=500" label:"Images"`
	ListingURL          string   `json:"listingUrl" validate:"required,httpurl" label:"Listing URL"`
	SecondaryListingURL string   `json:"secondaryListingUrl" validate:"required,httpurl" label:"Secondary listing URL"`
	Features            []string `json:"features" validate:"max=50,dive,required,max=60" label:"Features"`
	Order               *int     `json:"order" validate:"omitempty,gte=0" label:"Order"`
	IsActive            *bool    `json:"isActive" label:"Active"`
}

func (in *createInput) normalize() {
	in.Title = normalize.Name(in.Title)
	in.Price = strings.TrimSpace(in.Price)
	in.Location = normalize.Name(in.Location)
	in.AreaSize = strings.TrimSpace(in.AreaSize)
	in.AreaKey = normalize.AreaKey(in.AreaKey)
	in.Description = strings.TrimSpace(in.Description)
	in.ListingURL = strings.TrimSpace(in.ListingURL)
	in.SecondaryListingURL = strings.TrimSpace(in.SecondaryListingURL)
	for i := range in.Images {
		in.Images[i] = strings.TrimSpace(in.Images[i])
	}
	for i := range in.Features {
		in.Features[i] = strings.TrimSpace(in.Features[i])
	}
}

func (in createInput) model() models.Property {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return models.Property{
		Title:               in.Title,
		Price:               in.Price,
		Location:            in.Location,
		Beds:                in.Beds,
		Baths:               in.Baths,
		AreaSize:            in.AreaSize,
		AreaKey:             in.AreaKey,
		Description:         htmlsanitize.Sanitize(in.Description),
		Images:              normalize.List(in.Images),
		ListingURL:          in.ListingURL,
		SecondaryListingURL: in.SecondaryListingURL,
		Features:            normalize.List(in.Features),
		IsActive:            active,
	}
}

// updateInput is the PUT body. Only supplied fields change.
type updateInput struct {
	Title               *string   `json:"title" validate:"omitempty,min=1,max=200" label:"Title"`
	Price               *string   `json:"price" validate:"omitempty,min=1,max=50" label:"Price"`
	Location            *string   `json:"location" validate:"omitempty,min=1,max=200" label:"Location"`
	Beds                *int      `json:"beds" validate:"omitempty,gte=0,lte=100" label:"Beds"`
	Baths               *int      `json:"baths" validate:"omitempty,gte=0,lte=100" label:"Baths"`
	AreaSize            *string   `json:"areaSize" validate:"omitempty,max=50" label:"Area size"`
	AreaKey             *string   `json:"areaKey" validate:"omitempty,areakey" label:"Area"`
	Description         *string   `json:"description" validate:"omitempty,max=20000" label:"Description"`
	Images              *[]string `json:"images" validate:"omitempty,max=30,dive,required,max=500" label:"Images"`
	ListingURL          *string   `json:"listingUrl" validate:"omitempty,httpurl" label:"Listing URL"`
	SecondaryListingURL *string   `json:"secondaryListingUrl" validate:"omitempty,httpurl" label:"Secondary listing URL"`
	Features            *[]string `json:"features" validate:"omitempty,max=50,dive,required,max=60" label:"Features"`
	Order               *int      `json:"order" validate:"omitempty,gte=0" label:"Order"`
	IsActive            *bool     `json:"isActive" label:"Active"`
}

func trimPtr(p *string, f func(string) string) {
	if p != nil {
		*p = f(*p)
	}
}

func (in *updateInput) normalize() {
	trimPtr(in.Title, normalize.Name)
	trimPtr(in.Price, strings.TrimSpace)
	trimPtr(in.Location, normalize.Name)
	trimPtr(in.AreaSize, strings.TrimSpace)
	trimPtr(in.AreaKey, normalize.AreaKey)
	trimPtr(in.Description, strings.TrimSpace)
	trimPtr(in.ListingURL, strings.TrimSpace)
	trimPtr(in.SecondaryListingURL, strings.TrimSpace)
	if in.Images != nil {
		for i := range *in.Images {
			(*in.Images)[i] = strings.TrimSpace((*in.Images)[i])
		}
	}
	if in.Features != nil {
		for i := range *in.Features {
			(*in.Features)[i] = strings.TrimSpace((*in.Features)[i])
		}
	}
}

// set converts the supplied fields to a bson $set document.
func (in updateInput) set() bson.M {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.Location != nil {
		set["location"] = *in.Location
	}
	if in.Beds != nil {
		set["beds"] = *in.Beds
	}
	if in.Baths != nil {
		set["baths"] = *in.Baths
	}
	if in.AreaSize != nil {
		set["area_size"] = *in.AreaSize
	}
	if in.AreaKey != nil {
		set["area_key"] = *in.AreaKey
	}
	if in.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*in.Description)
	}
	if in.Images != nil {
		set["images"] = normalize.List(*in.Images)
	}
	if in.ListingURL != nil {
		set["listing_url"] = *in.ListingURL
	}
	if in.SecondaryListingURL != nil {
		set["secondary_listing_url"] = *in.SecondaryListingURL
	}
	if in.Features != nil {
		set["features"] = normalize.List(*in.Features)
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	return set
}

// reorderInput is the PUT /properties/reorder body. When AreaKey is set the
// reorder is scoped to that area's properties.
type reorderInput struct {
	PropertyIDs []string `json:"propertyIds"`
	AreaKey     string   `json:"areaKey" validate:"omitempty,areakey" label:"Area"`
}
