// internal/app/features/contacts/submit.go
package contacts

import (
	"net/http"

	contactstore "github.com/dalemusser/estatehub/internal/app/store/contacts"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleSubmit handles the public POST /contacts. No token is required. The
// lead starts as status new, priority medium, unread.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in submitInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.normalize()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "submit contact")
	defer cancel()

	c, err := contactstore.New(h.DB).Create(ctx, in.model())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "store contact failed", err, "Could not send your message. Please try again.")
		return
	}

	h.Log.Info("contact received", zap.String("contact_id", c.ID.Hex()), zap.String("interest", c.Interest))
	respond.Created(w, "Thank you! We will get back to you soon.", struct {
		ID string `json:"id"`
	}{ID: c.ID.Hex()})
}
