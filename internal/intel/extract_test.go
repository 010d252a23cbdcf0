package intel

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantURLs   []string
		wantGroups int
	}{
		{
			name:       "single url, invalid email ignored",
			text:       "See https://a.com/x and bad@@nomatch",
			wantURLs:   []string{"https://a.com/x"},
			wantGroups: 1,
		},
		{
			name:       "duplicate url collapses within one call",
			text:       "https://dup.example/v1 then again https://dup.example/v1",
			wantURLs:   []string{"https://dup.example/v1"},
			wantGroups: 1,
		},
		{
			name:       "scheme variants",
			text:       "ftp://files.example/a sftp://files.example/b file:///etc/hosts www2.example.com/path",
			wantURLs:   []string{"ftp://files.example/a", "sftp://files.example/b", "file:///etc/hosts", "www2.example.com/path"},
			wantGroups: 1,
		},
		{
			name:       "uppercase scheme still matches",
			text:       `loadUrl("HTTPS://CDN.Example.com/app.js")`,
			wantURLs:   []string{"HTTPS://CDN.Example.com/app.js"},
			wantGroups: 1,
		},
		{
			name:       "no urls means no group",
			text:       "nothing to see here",
			wantURLs:   nil,
			wantGroups: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Extract(tt.text, "f.java")
			if !reflect.DeepEqual(res.URLs, tt.wantURLs) {
				t.Fatalf("urls mismatch: got=%v want=%v", res.URLs, tt.wantURLs)
			}
			if len(res.URLGroups) != tt.wantGroups {
				t.Fatalf("url group count mismatch: got=%d want=%d", len(res.URLGroups), tt.wantGroups)
			}
			if tt.wantGroups == 1 && res.URLGroups[0].Path != "f.java" {
				t.Fatalf("group path mismatch: got=%q", res.URLGroups[0].Path)
			}
		})
	}
}

// Dedup state must not persist across calls: the same URL seen in two
// separate calls produces a group each time.
func TestExtractDedupIsPerCall(t *testing.T) {
	first := Extract("https://a.com/x", "a.java")
	second := Extract("https://a.com/x", "b.java")

	if len(first.URLGroups) != 1 || len(second.URLGroups) != 1 {
		t.Fatalf("each call should emit its own group: first=%d second=%d",
			len(first.URLGroups), len(second.URLGroups))
	}
}

func TestExtractEmails(t *testing.T) {
	res := Extract("Contact Admin@Example.COM or admin@example.com today", "strings.xml")

	want := []string{"admin@example.com"}
	if len(res.EmailGroups) != 1 {
		t.Fatalf("expected one email group, got %d", len(res.EmailGroups))
	}
	if !reflect.DeepEqual(res.EmailGroups[0].Items, want) {
		t.Fatalf("emails mismatch: got=%v want=%v", res.EmailGroups[0].Items, want)
	}
}

func TestExtractNoEmailGroupWithoutMatch(t *testing.T) {
	res := Extract("See https://a.com/x and bad@@nomatch", "f.java")
	if len(res.EmailGroups) != 0 {
		t.Fatalf("expected zero email groups, got %d", len(res.EmailGroups))
	}
}

func TestExtractEscapesProvenancePath(t *testing.T) {
	res := Extract("https://a.com/x", `res/<values>/strings.xml`)
	if res.URLGroups[0].Path != "res/&lt;values&gt;/strings.xml" {
		t.Fatalf("path not escaped: got=%q", res.URLGroups[0].Path)
	}
}
