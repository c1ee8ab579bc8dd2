// internal/app/features/contacts/list.go
package contacts

import (
	"net/http"
	"strconv"

	contactstore "github.com/dalemusser/estatehub/internal/app/store/contacts"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /contacts, newest first.
//
// Query: status, priority, isRead, q, page, limit. "all" means no filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := contactstore.Filter{
		Status:   normalize.Filter(query.Get(r, "status")),
		Priority: normalize.Filter(query.Get(r, "priority")),
		Search:   search.Clean(query.Get(r, "q")),
	}
	if f.Status != "" && !models.IsValidContactStatus(f.Status) {
		respond.Error(w, apperr.Invalid("status", "Unknown status "+f.Status+"."), "")
		return
	}
	if f.Priority != "" && !models.IsValidPriority(f.Priority) {
		respond.Error(w, apperr.Invalid("priority", "Unknown priority "+f.Priority+"."), "")
		return
	}
	if v := normalize.Filter(query.Get(r, "isRead")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respond.Error(w, apperr.Invalid("isRead", "isRead must be true or false."), "")
			return
		}
		f.IsRead = &b
	}
	page := paging.Parse(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list contacts")
	defer cancel()

	items, total, err := contactstore.New(h.DB).List(ctx, f, page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list contacts failed", err, "Could not load contacts.")
		return
	}
	pg := page.Result(total)
	respond.List(w, items, len(items), &pg)
}

// ServeStats handles GET /contacts/stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "contact stats")
	defer cancel()

	st, err := contactstore.New(h.DB).Stats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contact stats failed", err, "Could not load contact statistics.")
		return
	}
	respond.OK(w, st)
}
