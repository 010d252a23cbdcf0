package firebase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// domainMarker identifies realtime-database backends among extracted URLs.
const domainMarker = "firebaseio.com"

// Probes carry a browser user-agent: misconfigured databases sometimes sit
// behind filters that answer differently to obvious tooling.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1)" +
	" AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36"

// Finding records one probed database backend. URL is the canonical root
// endpoint when the backend answered openly, the original URL otherwise.
type Finding struct {
	URL  string `json:"url"`
	Open bool   `json:"open"`
}

// Prober checks whether realtime-database roots answer unauthenticated reads.
type Prober struct {
	client  *http.Client
	logger  *slog.Logger
	workers int
}

func NewProber(client *http.Client, logger *slog.Logger, workers int) *Prober {
	if workers < 1 {
		workers = 1
	}
	return &Prober{client: client, logger: logger, workers: workers}
}

// Probe issues a single read against the root data endpoint of rawURL's host.
// A 200 means the database is world-readable: the canonical probe URL and
// true come back. Every failure mode degrades to (rawURL, false); one dead
// host must never abort a report build.
func (p *Prober) Probe(ctx context.Context, rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		p.logger.Warn("open database detection failed", "url", rawURL, "error", err)
		return rawURL, false
	}

	probeURL := fmt.Sprintf("%s://%s/.json", parsed.Scheme, parsed.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		p.logger.Warn("open database detection failed", "url", rawURL, "error", err)
		return rawURL, false
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("open database detection failed", "url", rawURL, "error", err)
		return rawURL, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return probeURL, true
	}
	return rawURL, false
}

// Candidates filters urls down to realtime-database backends.
func Candidates(urls []string) []string {
	var out []string
	for _, u := range urls {
		if strings.Contains(u, domainMarker) {
			out = append(out, u)
		}
	}
	return out
}

// Scan filters urls down to realtime-database backends and probes each.
// Probes run concurrently behind a bounded worker pool; results keep the
// input order and collapse exact (url, open) duplicates, first seen wins.
func (p *Prober) Scan(ctx context.Context, urls []string) []Finding {
	candidates := Candidates(urls)
	if len(candidates) == 0 {
		return nil
	}

	results := make([]Finding, len(candidates))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, u := range candidates {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			resolved, open := p.Probe(ctx, u)
			results[i] = Finding{URL: resolved, Open: open}
		}(i, u)
	}
	wg.Wait()

	seen := make(map[Finding]struct{}, len(results))
	out := make([]Finding, 0, len(results))
	for _, f := range results {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
