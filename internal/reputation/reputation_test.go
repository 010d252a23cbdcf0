package reputation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testHash = "44444444444444444444444444444444"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.Client(), srv.URL, "test-key", logger)
}

func TestLookupKnownHash(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("resource"); got != testHash {
			t.Errorf("resource param mismatch: got=%q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey param mismatch: got=%q", got)
		}
		w.Write([]byte(`{"response_code":1,"positives":5,"total":70,"permalink":"https://vt.example/f/abc"}`))
	})

	res, err := c.Lookup(context.Background(), "/uploads/x/x.apk", testHash)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !res.Found || res.Positives != 5 || res.Total != 70 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLookupUnknownHash(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code":0}`))
	})

	res, err := c.Lookup(context.Background(), "", testHash)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if res.Found {
		t.Fatal("unknown hash should not report found")
	}
}

func TestLookupServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := c.Lookup(context.Background(), "", testHash); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestLookupWithoutAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(http.DefaultClient, "https://vt.example", "", logger)

	if _, err := c.Lookup(context.Background(), "", testHash); err == nil {
		t.Fatal("expected error when no API key is configured")
	}
}
