// internal/app/features/properties/list.go
package properties

import (
	"net/http"
	"strconv"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /properties.
//
// Query: areaKey, q, minBeds, feature, page, limit, includeInactive (admin).
// Without page/limit every match is returned; pagination is added otherwise.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := propertystore.Filter{
		AreaKey:         normalize.AreaKey(normalize.Filter(query.Get(r, "areaKey"))),
		Search:          search.Clean(query.Get(r, "q")),
		Feature:         normalize.Filter(query.Get(r, "feature")),
		IncludeInactive: authz.IncludeInactive(r),
	}
	if v := query.Get(r, "minBeds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.ErrLog.LogBadRequest(w, r, "bad minBeds", err, "minBeds must be a non-negative number.")
			return
		}
		f.MinBeds = n
	}

	var page *paging.Params
	if paging.Requested(r) {
		p := paging.Parse(r)
		page = &p
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list properties")
	defer cancel()

	items, total, err := propertystore.New(h.DB).List(ctx, f, page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list properties failed", err, "Could not load properties.")
		return
	}

	if page == nil {
		respond.List(w, items, len(items), nil)
		return
	}
	pg := page.Result(total)
	respond.List(w, items, len(items), &pg)
}
