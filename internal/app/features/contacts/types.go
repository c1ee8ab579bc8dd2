// internal/app/features/contacts/types.go
package contacts

import (
	"net/http"
	"strings"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// submitInput is the public contact form. Markup is stripped before
// validation so a field holding only tags counts as empty.
type submitInput struct {
	Name     string `json:"name" validate:"required,max=100" label:"Name"`
	Email    string `json:"email" validate:"required,email,max=254" label:"Email"`
	Phone    string `json:"phone" validate:"max=30" label:"Phone"`
	Interest string `json:"interest" validate:"max=100" label:"Interest"`
	Message  string `json:"message" validate:"required,max=5000" label:"Message"`
}

func (in *submitInput) normalize() {
	in.Name = normalize.Name(htmlsanitize.StripTags(in.Name))
	in.Email = normalize.Email(in.Email)
	in.Phone = normalize.Name(htmlsanitize.StripTags(in.Phone))
	in.Interest = normalize.Name(htmlsanitize.StripTags(in.Interest))
	in.Message = htmlsanitize.StripTags(in.Message)
}

func (in submitInput) model() models.Contact {
	return models.Contact{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Interest: in.Interest,
		Message:  in.Message,
	}
}

// updateInput is the admin edit. Any status may follow any other.
type updateInput struct {
	Status   *string `json:"status" validate:"omitempty,contactstatus" label:"Status"`
	Priority *string `json:"priority" validate:"omitempty,priority" label:"Priority"`
	IsRead   *bool   `json:"isRead" label:"Read"`
	Notes    *string `json:"notes" validate:"omitempty,max=5000" label:"Notes"`
}

func (in *updateInput) normalize() {
	if in.Status != nil {
		*in.Status = strings.ToLower(strings.TrimSpace(*in.Status))
	}
	if in.Priority != nil {
		*in.Priority = strings.ToLower(strings.TrimSpace(*in.Priority))
	}
	if in.Notes != nil {
		*in.Notes = htmlsanitize.StripTags(*in.Notes)
	}
}

func (in updateInput) set() bson.M {
	set := bson.M{}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Priority != nil {
		set["priority"] = *in.Priority
	}
	if in.IsRead != nil {
		set["is_read"] = *in.IsRead
	}
	if in.Notes != nil {
		set["notes"] = *in.Notes
	}
	return set
}

type markReadInput struct {
	IsRead *bool `json:"isRead"`
}

func contactID(r *http.Request) (primitive.ObjectID, *apperr.Error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("id", "Invalid contact ID.")
	}
	return oid, nil
}
