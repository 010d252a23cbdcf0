package engine

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ClientOptions configures an outbound HTTP client. The zero value gives a
// direct, TLS-verifying client with the default timeout.
type ClientOptions struct {
	Timeout     time.Duration
	ProxyURL    string // empty means direct
	SkipVerify  bool
	Delay       time.Duration // politeness delay before each request
	MaxRequests int64         // total request budget, 0 means unlimited
}

const defaultTimeout = 10 * time.Second

// NewHTTPClient builds a pooled client honoring the upstream proxy and TLS
// policy. Redirects are followed; open-endpoint detection cares about the
// final status, not the hop chain.
func NewHTTPClient(opts ClientOptions) (*http.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if opts.SkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	transport := &http.Transport{
		TLSClientConfig:       tlsConfig,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if opts.ProxyURL != "" {
		proxy, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	var rt http.RoundTripper = transport
	if opts.Delay > 0 {
		rt = &DelayedTransport{Transport: rt, Delay: opts.Delay}
	}
	if opts.MaxRequests > 0 {
		rt = &RequestBudgetTransport{Base: rt, Max: opts.MaxRequests}
	}

	return &http.Client{Timeout: timeout, Transport: rt}, nil
}
