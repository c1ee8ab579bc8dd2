// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the caller does not send "limit".
const DefaultLimit = 20

// MaxLimit caps "limit" so a single request cannot pull a whole collection.
const MaxLimit = 100

// Params holds the parsed page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Page is the pagination block returned in list envelopes.
type Page struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// Parse extracts "page" and "limit" from the query string.
// Missing or invalid values fall back to page 1 and DefaultLimit.
func Parse(r *http.Request) Params {
	return Params{
		Page:  parsePositive(query.Get(r, "page"), 1),
		Limit: clampLimit(parsePositive(query.Get(r, "limit"), DefaultLimit)),
	}
}

// Requested reports whether the caller asked for paging at all.
// Lists that are small by nature (areas, slider) return everything otherwise.
func Requested(r *http.Request) bool {
	return query.Get(r, "page") != "" || query.Get(r, "limit") != ""
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64((p.Page - 1) * p.Limit)
}

// ApplyToFind sets skip and limit on the find options.
func (p Params) ApplyToFind(find *options.FindOptions) *options.FindOptions {
	return find.SetSkip(p.Skip()).SetLimit(int64(p.Limit))
}

// Result computes the pagination block for a total document count.
func (p Params) Result(total int64) Page {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Page{
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}

func parsePositive(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func clampLimit(n int) int {
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
