package firebase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int) roundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader("null")),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}
}

func testProber(rt http.RoundTripper) *Prober {
	client := &http.Client{Transport: rt}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProber(client, logger, 3)
}

func TestProbeOpenDatabase(t *testing.T) {
	var probed string
	p := testProber(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		probed = req.URL.String()
		if ua := req.Header.Get("User-Agent"); !strings.HasPrefix(ua, "Mozilla/5.0") {
			t.Fatalf("probe should use a browser user-agent, got %q", ua)
		}
		return respond(http.StatusOK)(req)
	}))

	got, open := p.Probe(context.Background(), "https://x.firebaseio.com/users/1")
	if !open {
		t.Fatal("expected open database")
	}
	if got != "https://x.firebaseio.com/.json" {
		t.Fatalf("resolved URL mismatch: got=%q", got)
	}
	if probed != "https://x.firebaseio.com/.json" {
		t.Fatalf("probe target mismatch: got=%q", probed)
	}
}

func TestProbeClosedOrFailing(t *testing.T) {
	tests := []struct {
		name string
		rt   roundTripperFunc
		url  string
	}{
		{
			name: "non-200 status",
			rt:   respond(http.StatusUnauthorized),
			url:  "https://x.firebaseio.com/",
		},
		{
			name: "transport error",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			url: "https://x.firebaseio.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProber(tt.rt)
			got, open := p.Probe(context.Background(), tt.url)
			if open {
				t.Fatal("probe failure should never report open")
			}
			if got != tt.url {
				t.Fatalf("failed probe should return input URL: got=%q want=%q", got, tt.url)
			}
		})
	}
}

func TestProbeUnparsableURL(t *testing.T) {
	p := testProber(respond(http.StatusOK))
	got, open := p.Probe(context.Background(), "not a url")
	if open || got != "not a url" {
		t.Fatalf("unexpected result for junk input: got=%q open=%v", got, open)
	}
}

func TestScanFiltersProbesAndDedups(t *testing.T) {
	p := testProber(respond(http.StatusOK))

	findings := p.Scan(context.Background(), []string{
		"https://x.firebaseio.com/",
		"https://example.com/not-a-db",
		"https://x.firebaseio.com/other/path", // same host, dedups after rewrite
		"https://y.firebaseio.com/",
	})

	want := []Finding{
		{URL: "https://x.firebaseio.com/.json", Open: true},
		{URL: "https://y.firebaseio.com/.json", Open: true},
	}
	if len(findings) != len(want) {
		t.Fatalf("finding count mismatch: got=%v want=%v", findings, want)
	}
	for i := range want {
		if findings[i] != want[i] {
			t.Fatalf("finding %d mismatch: got=%+v want=%+v", i, findings[i], want[i])
		}
	}
}

func TestScanNoCandidates(t *testing.T) {
	p := testProber(respond(http.StatusOK))
	if got := p.Scan(context.Background(), []string{"https://example.com/"}); got != nil {
		t.Fatalf("expected no findings, got %v", got)
	}
}
