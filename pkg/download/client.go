// Package download provides the HTTP client used to fetch gallery pages and
// images.  The client carries a fixed user agent and request timeout, and its
// transport caps the total and per-host connection counts so that launching a
// whole gallery's worth of downloads at once keeps parallelism bounded.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout  = 60 * time.Second
	maxConns        = 100
	maxConnsPerHost = 10

	defaultAcceptLanguage = "en-US,en;q=0.9"
)

// UserAgent is the fixed user agent sent with every outbound request.  The
// browser session uses the same value so page and image traffic match.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Client is a client for fetching pages and images.  Construct one via NewClient.
type Client struct {
	httpClient *http.Client
	userAgent  string
	referer    string
}

// Option is an option that can be passed to NewClient.
type Option func(client *Client)

// WithClient is an option for NewClient that replaces the underlying
// http.Client.  Mostly useful in tests.
func WithClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithUserAgent is an option for NewClient that overrides the user agent sent
// with every request.
func WithUserAgent(userAgent string) Option {
	return func(client *Client) {
		client.userAgent = userAgent
	}
}

// WithReferer is an option for NewClient that sets a Referer header to send
// with every request.
func WithReferer(referer string) Option {
	return func(client *Client) {
		client.referer = referer
	}
}

// WithTimeout is an option for NewClient that overrides the overall request
// timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = timeout
	}
}

// NewClient creates a new download Client.
func NewClient(options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxConns,
				MaxConnsPerHost:     maxConnsPerHost,
				MaxIdleConnsPerHost: maxConnsPerHost,
			},
		},
		userAgent: UserAgent,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// NewGetRequest creates a GET request carrying the client's fixed headers.
func (client *Client) NewGetRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", client.userAgent)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)
	if client.referer != "" {
		req.Header.Set("Referer", client.referer)
	}

	return req, nil
}

// Get fetches a URL and returns the raw response.  The caller owns the body.
func (client *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := client.NewGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("server replied with %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}

// GetBytes fetches a URL and returns the response body.
func (client *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
