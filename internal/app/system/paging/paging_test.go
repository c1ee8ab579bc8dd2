package paging

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/properties", 1, DefaultLimit},
		{"explicit", "/properties?page=3&limit=10", 3, 10},
		{"negative page", "/properties?page=-2", 1, DefaultLimit},
		{"garbage", "/properties?page=abc&limit=xyz", 1, DefaultLimit},
		{"limit capped", "/properties?limit=1000", 1, MaxLimit},
		{"zero limit", "/properties?limit=0", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			got := Parse(r)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
		})
	}
}

func TestRequested(t *testing.T) {
	if Requested(httptest.NewRequest("GET", "/areas", nil)) {
		t.Error("Requested() = true without page/limit")
	}
	if !Requested(httptest.NewRequest("GET", "/areas?limit=5", nil)) {
		t.Error("Requested() = false with limit")
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		p    Params
		want int64
	}{
		{Params{Page: 1, Limit: 20}, 0},
		{Params{Page: 2, Limit: 20}, 20},
		{Params{Page: 5, Limit: 10}, 40},
		{Params{Page: 0, Limit: 10}, 0},
	}
	for _, tt := range tests {
		if got := tt.p.Skip(); got != tt.want {
			t.Errorf("Params%+v.Skip() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestApplyToFind(t *testing.T) {
	find := Params{Page: 3, Limit: 15}.ApplyToFind(options.Find())
	if find.Skip == nil || *find.Skip != 30 {
		t.Errorf("Skip = %v, want 30", find.Skip)
	}
	if find.Limit == nil || *find.Limit != 15 {
		t.Errorf("Limit = %v, want 15", find.Limit)
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		name      string
		p         Params
		total     int64
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty", Params{Page: 1, Limit: 20}, 0, 0, false, false},
		{"single page", Params{Page: 1, Limit: 20}, 7, 1, false, false},
		{"exact multiple", Params{Page: 1, Limit: 10}, 30, 3, true, false},
		{"middle page", Params{Page: 2, Limit: 10}, 25, 3, true, true},
		{"last page", Params{Page: 3, Limit: 10}, 25, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Result(tt.total)
			if got.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", got.Pages, tt.wantPages)
			}
			if got.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", got.HasNext, tt.wantNext)
			}
			if got.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", got.HasPrev, tt.wantPrev)
			}
			if got.Total != tt.total {
				t.Errorf("Total = %d, want %d", got.Total, tt.total)
			}
		})
	}
}
