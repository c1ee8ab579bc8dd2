// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /audit-events, newest first.
//
// Query: category, eventType, actor, success, since, until, page, limit.
// since/until accept RFC 3339 timestamps or YYYY-MM-DD dates; a bare
// until date covers the whole day.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, aerr := parseFilter(r)
	if aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	page := paging.Parse(r)
	filter.Limit = int64(page.Limit)
	filter.Offset = page.Skip()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	store := audit.New(h.DB)
	events, err := store.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "Could not load the audit log.")
		return
	}
	total, err := store.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events failed", err, "Could not load the audit log.")
		return
	}

	pg := page.Result(total)
	respond.List(w, events, len(events), &pg)
}

func parseFilter(r *http.Request) (audit.QueryFilter, *apperr.Error) {
	f := audit.QueryFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "eventType"),
		Actor:     query.Get(r, "actor"),
	}
	switch f.Category {
	case "", audit.CategoryAuth, audit.CategoryAdmin:
	default:
		return f, apperr.Invalid("category", "Category must be auth or admin.")
	}
	if v := query.Get(r, "success"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, apperr.Invalid("success", "success must be true or false.")
		}
		f.Success = &b
	}
	if v := query.Get(r, "since"); v != "" {
		t, _, ok := parseTime(v)
		if !ok {
			return f, apperr.Invalid("since", "since must be a date (YYYY-MM-DD) or RFC 3339 time.")
		}
		f.StartTime = &t
	}
	if v := query.Get(r, "until"); v != "" {
		t, dateOnly, ok := parseTime(v)
		if !ok {
			return f, apperr.Invalid("until", "until must be a date (YYYY-MM-DD) or RFC 3339 time.")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.EndTime = &t
	}
	return f, nil
}

func parseTime(s string) (t time.Time, dateOnly bool, ok bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}
