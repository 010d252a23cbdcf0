// Package reputation looks up scanned binaries against a third-party
// malware-reputation service.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/MOYARU/mas/internal/version"
)

// Result is the verdict for one artifact hash.
type Result struct {
	Found     bool   `json:"found"`
	Positives int    `json:"positives"`
	Total     int    `json:"total"`
	Permalink string `json:"permalink,omitempty"`
}

// Service is consumed by the report builder. Lookup receives both the local
// artifact path and its hash; implementations decide which they need.
type Service interface {
	Lookup(ctx context.Context, filePath, hash string) (*Result, error)
}

// Client queries a VirusTotal-compatible v2 file report endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey, logger: logger}
}

func (c *Client) Lookup(ctx context.Context, filePath, hash string) (*Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("reputation lookup disabled: no API key configured")
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("resource", hash)
	endpoint := c.baseURL + "/vtapi/v2/file/report?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.ClientUserAgent())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reputation request for %s: %w", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reputation service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read reputation response: %w", err)
	}

	var raw struct {
		ResponseCode int    `json:"response_code"`
		Positives    int    `json:"positives"`
		Total        int    `json:"total"`
		Permalink    string `json:"permalink"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode reputation response: %w", err)
	}

	if raw.ResponseCode != 1 {
		c.logger.Debug("hash unknown to reputation service", "hash", hash)
		return &Result{Found: false}, nil
	}
	return &Result{
		Found:     true,
		Positives: raw.Positives,
		Total:     raw.Total,
		Permalink: raw.Permalink,
	}, nil
}
