package render

import (
	"strings"
	"testing"
)

func TestRenderAndroidReport(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer error: %v", err)
	}

	out, err := r.Render("android_report.html", map[string]any{
		"app_name":       "Demo App",
		"package_id":     "com.example.demo",
		"security_score": 85,
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "Demo App") || !strings.Contains(html, "com.example.demo") {
		t.Fatalf("rendered report missing app fields:\n%s", html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer error: %v", err)
	}
	if _, err := r.Render("nope.html", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
