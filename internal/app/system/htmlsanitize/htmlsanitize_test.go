package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Corner plot, 500 sq yd"); got != "Corner plot, 500 sq yd" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_PreservesSafeMarkup(t *testing.T) {
	inputs := []string{
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Gas</li><li>Electricity</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<h2>Amenities</h2><p>Park</p>",
		"<blockquote>A quote</blockquote>",
	}
	for _, in := range inputs {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesEventHandlers(t *testing.T) {
	got := htmlsanitize.Sanitize(`<img src="https://example.com/a.png" onerror="alert('xss')">`)
	if strings.Contains(got, "onerror") {
		t.Errorf("expected onerror removed, got %q", got)
	}
	if !strings.Contains(got, "src=") {
		t.Errorf("expected safe image kept, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	in := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(in); strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitize_RemovesIframeAndForms(t *testing.T) {
	in := `<p>Content</p><iframe src="https://evil.com"></iframe><form action="/x"><input name="a"></form>`
	got := htmlsanitize.Sanitize(in)
	for _, bad := range []string{"iframe", "<form", "<input"} {
		if strings.Contains(got, bad) {
			t.Errorf("expected %s removed, got %q", bad, got)
		}
	}
	if !strings.Contains(got, "Content") {
		t.Errorf("expected safe content kept, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello there", "Hello there"},
		{"<b>Hi</b> & bye", "Hi & bye"},
		{"<script>alert(1)</script>Hello", "Hello"},
		{"  <p>Call me</p>  ", "Call me"},
		{"5 < 10", "5 < 10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := htmlsanitize.StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"<p>Hello</p>", false},
		{"5 < 10", true},
		{"5 > 3", true},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
