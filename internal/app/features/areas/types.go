// internal/app/features/areas/types.go
package areas

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
)

/* ------------------------------ societies ------------------------------- */

// reservedSocietyName would be shadowed by the reorder route.
const reservedSocietyName = "reorder"

func checkSocietyName(field, name string) *apperr.Error {
	if strings.EqualFold(name, reservedSocietyName) {
		return apperr.Invalid(field, `"reorder" cannot be used as a society name.`)
	}
	return nil
}

type societyInput struct {
	Name        string   `json:"name" validate:"required,max=200" label:"Society name"`
	Description string   `json:"description" validate:"max=20000" label:"Description"`
	MapImage    string   `json:"mapImage" validate:"max=500" label:"Map image"`
	Amenities   []string `json:"amenities" validate:"max=50,dive,required,max=100" label:"Amenities"`
	Contact     string   `json:"contact" validate:"max=200" label:"Contact"`
	Order       *int     `json:"order" validate:"omitempty,gte=0" label:"Order"`
}

func (in *societyInput) normalize() {
	in.Name = normalize.Name(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.MapImage = strings.TrimSpace(in.MapImage)
	in.Contact = strings.TrimSpace(in.Contact)
	for i := range in.Amenities {
		in.Amenities[i] = strings.TrimSpace(in.Amenities[i])
	}
}

func (in societyInput) model() models.Society {
	return models.Society{
		Name:        in.Name,
		Description: htmlsanitize.Sanitize(in.Description),
		MapImage:    in.MapImage,
		Amenities:   normalize.List(in.Amenities),
		Contact:     in.Contact,
	}
}

type societyUpdateInput struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200" label:"Society name"`
	Description *string   `json:"description" validate:"omitempty,max=20000" label:"Description"`
	MapImage    *string   `json:"mapImage" validate:"omitempty,max=500" label:"Map image"`
	Amenities   *[]string `json:"amenities" validate:"omitempty,max=50,dive,required,max=100" label:"Amenities"`
	Contact     *string   `json:"contact" validate:"omitempty,max=200" label:"Contact"`
	Order       *int      `json:"order" validate:"omitempty,gte=0" label:"Order"`
}

func (in *societyUpdateInput) normalize() {
	trimPtr(in.Name, normalize.Name)
	trimPtr(in.Description, strings.TrimSpace)
	trimPtr(in.MapImage, strings.TrimSpace)
	trimPtr(in.Contact, strings.TrimSpace)
	if in.Amenities != nil {
		for i := range *in.Amenities {
			(*in.Amenities)[i] = strings.TrimSpace((*in.Amenities)[i])
		}
	}
}

func (in societyUpdateInput) empty() bool {
	return in.Name == nil && in.Description == nil && in.MapImage == nil &&
		in.Amenities == nil && in.Contact == nil && in.Order == nil
}

func (in societyUpdateInput) apply(soc *models.Society) {
	if in.Name != nil {
		soc.Name = *in.Name
	}
	if in.Description != nil {
		soc.Description = htmlsanitize.Sanitize(*in.Description)
	}
	if in.MapImage != nil {
		soc.MapImage = *in.MapImage
	}
	if in.Amenities != nil {
		soc.Amenities = normalize.List(*in.Amenities)
	}
	if in.Contact != nil {
		soc.Contact = *in.Contact
	}
	if in.Order != nil {
		soc.Order = *in.Order
	}
}

/* ------------------------------ sub-areas ------------------------------- */

type subAreaInput struct {
	ID          int64          `json:"id" validate:"gte=0" label:"Sub-area id"`
	Title       string         `json:"title" validate:"required,max=200" label:"Title"`
	Description string         `json:"description" validate:"max=20000" label:"Description"`
	MapImage    string         `json:"mapImage" validate:"max=500" label:"Map image"`
	Order       *int           `json:"order" validate:"omitempty,gte=0" label:"Order"`
	Societies   []societyInput `json:"societies" validate:"max=200,dive" label:"Societies"`
}

func (in *subAreaInput) normalize() {
	in.Title = normalize.Name(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.MapImage = strings.TrimSpace(in.MapImage)
	for i := range in.Societies {
		in.Societies[i].normalize()
	}
}

// model converts the input. Societies without an explicit order take their
// list position.
func (in subAreaInput) model() models.SubArea {
	sa := models.SubArea{
		ID:          in.ID,
		Title:       in.Title,
		Description: htmlsanitize.Sanitize(in.Description),
		MapImage:    in.MapImage,
		Societies:   make([]models.Society, len(in.Societies)),
	}
	for i, s := range in.Societies {
		soc := s.model()
		soc.Order = i
		if s.Order != nil {
			soc.Order = *s.Order
		}
		sa.Societies[i] = soc
	}
	return sa
}

type subAreaUpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200" label:"Title"`
	Description *string `json:"description" validate:"omitempty,max=20000" label:"Description"`
	MapImage    *string `json:"mapImage" validate:"omitempty,max=500" label:"Map image"`
	Order       *int    `json:"order" validate:"omitempty,gte=0" label:"Order"`
}

func (in *subAreaUpdateInput) normalize() {
	trimPtr(in.Title, normalize.Name)
	trimPtr(in.Description, strings.TrimSpace)
	trimPtr(in.MapImage, strings.TrimSpace)
}

func (in subAreaUpdateInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.MapImage == nil && in.Order == nil
}

func (in subAreaUpdateInput) apply(sa *models.SubArea) {
	if in.Title != nil {
		sa.Title = *in.Title
	}
	if in.Description != nil {
		sa.Description = htmlsanitize.Sanitize(*in.Description)
	}
	if in.MapImage != nil {
		sa.MapImage = *in.MapImage
	}
	if in.Order != nil {
		sa.Order = *in.Order
	}
}

/* -------------------------------- areas --------------------------------- */

type areaInput struct {
	Key         string         `json:"key" validate:"required,max=100,areakey" label:"Key"`
	Name        string         `json:"name" validate:"required,max=200" label:"Name"`
	Description string         `json:"description" validate:"max=20000" label:"Description"`
	Image       string         `json:"image" validate:"max=500" label:"Image"`
	Order       *int           `json:"order" validate:"omitempty,gte=0" label:"Order"`
	SubAreas    []subAreaInput `json:"subAreas" validate:"max=200,dive" label:"Sub-areas"`
}

func (in *areaInput) normalize() {
	in.Key = normalize.AreaKey(in.Key)
	in.Name = normalize.Name(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	for i := range in.SubAreas {
		in.SubAreas[i].normalize()
	}
}

func (in areaInput) model() models.Area {
	a := models.Area{
		Key:         in.Key,
		Name:        in.Name,
		Description: htmlsanitize.Sanitize(in.Description),
		Image:       in.Image,
		SubAreas:    make([]models.SubArea, len(in.SubAreas)),
	}
	for i, s := range in.SubAreas {
		sa := s.model()
		sa.Order = i
		if s.Order != nil {
			sa.Order = *s.Order
		}
		a.SubAreas[i] = sa
	}
	return a
}

// areaUpdateInput covers the top-level fields. The key is immutable and
// sub-areas are edited through their own routes.
type areaUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200" label:"Name"`
	Description *string `json:"description" validate:"omitempty,max=20000" label:"Description"`
	Image       *string `json:"image" validate:"omitempty,max=500" label:"Image"`
	Order       *int    `json:"order" validate:"omitempty,gte=0" label:"Order"`
}

func (in *areaUpdateInput) normalize() {
	trimPtr(in.Name, normalize.Name)
	trimPtr(in.Description, strings.TrimSpace)
	trimPtr(in.Image, strings.TrimSpace)
}

func (in areaUpdateInput) set() bson.M {
	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*in.Description)
	}
	if in.Image != nil {
		set["image"] = *in.Image
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	return set
}

/* ------------------------------- reorder -------------------------------- */

type reorderAreasInput struct {
	AreaKeys []string `json:"areaKeys"`
}

// reorderSubAreasInput accepts numeric ids; the admin UI sends them as
// numbers.
type reorderSubAreasInput struct {
	SubAreas []int64 `json:"subAreas"`
}

type reorderSocietiesInput struct {
	Societies []string `json:"societies"`
}

type replaceSocietiesInput struct {
	Societies []societyInput `json:"societies" validate:"max=200,dive" label:"Societies"`
}

/* ------------------------------- helpers -------------------------------- */

func trimPtr(p *string, f func(string) string) {
	if p != nil {
		*p = f(*p)
	}
}

func areaKeyParam(r *http.Request, name string) string {
	return normalize.AreaKey(chi.URLParam(r, name))
}

func subAreaIDParam(r *http.Request, name string) (int64, *apperr.Error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid(name, "Invalid sub-area ID.")
	}
	return id, nil
}

// societyNameParam returns the decoded {name} segment.
func societyNameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if s, err := url.PathUnescape(raw); err == nil {
		raw = s
	}
	return normalize.Name(raw)
}

func formatIDs(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}
