// internal/app/features/contacts/edit.go
package contacts

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	contactstore "github.com/dalemusser/estatehub/internal/app/store/contacts"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeGet handles GET /contacts/{id}. Reading a lead does not mark it
// read; that is PUT /contacts/{id}/mark-read.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	oid, aerr := contactID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get contact")
	defer cancel()

	c, err := contactstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "contact", err)
		return
	}
	respond.OK(w, c)
}

// HandleUpdate handles PUT /contacts/{id} (status, priority, isRead, notes).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, aerr := contactID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in updateInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}
	set := in.set()
	if len(set) == 0 {
		respond.Error(w, apperr.Invalid("body", "No fields to update."), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update contact")
	defer cancel()

	c, err := contactstore.New(h.DB).Update(ctx, oid, set)
	if err != nil {
		h.ErrLog.Respond(w, r, "contact", err)
		return
	}

	details := map[string]string{}
	if in.Status != nil {
		details["status"] = c.Status
	}
	if in.Priority != nil {
		details["priority"] = c.Priority
	}
	h.Log.Info("contact updated", zap.String("contact_id", oid.Hex()), zap.String("status", c.Status))
	h.AuditLog.Admin(ctx, r, audit.EventContactUpdated, oid.Hex(), details)
	respond.Message(w, "Contact updated", c)
}

// HandleMarkRead handles PUT /contacts/{id}/mark-read. The body
// {"isRead":false} marks the lead unread again; no body means read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	oid, aerr := contactID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	var in markReadInput
	if aerr := respond.DecodeOptional(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	read := true
	if in.IsRead != nil {
		read = *in.IsRead
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark contact read")
	defer cancel()

	c, err := contactstore.New(h.DB).MarkRead(ctx, oid, read)
	if err != nil {
		h.ErrLog.Respond(w, r, "contact", err)
		return
	}

	h.AuditLog.Admin(ctx, r, audit.EventContactMarkedRead, oid.Hex(), map[string]string{"is_read": strconv.FormatBool(read)})
	msg := "Contact marked as read"
	if !read {
		msg = "Contact marked as unread"
	}
	respond.Message(w, msg, c)
}

// HandleDelete handles DELETE /contacts/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, aerr := contactID(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete contact")
	defer cancel()

	n, err := contactstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete contact failed", err, "Could not delete contact.")
		return
	}
	if n == 0 {
		respond.Error(w, apperr.NotFound("contact"), "")
		return
	}

	h.Log.Info("contact deleted", zap.String("contact_id", oid.Hex()))
	h.AuditLog.Admin(ctx, r, audit.EventContactDeleted, oid.Hex(), nil)
	respond.Message(w, "Contact deleted", nil)
}
