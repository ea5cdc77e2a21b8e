// Package yahoo implements the upstream source against Yahoo Finance's
// public JSON endpoints (chart, quoteSummary, options, search). It decodes
// loosely typed payloads and hands them over as semi-structured values;
// field defaulting belongs to the mapper, never here.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tickerprovider/internal/source"
)

const (
	defaultBaseURL = "https://query2.finance.yahoo.com"
	defaultUA      = "tickerprovider/1.0"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Yahoo Finance API client. It satisfies source.Source.
type Client struct {
	// baseURL is the base URL for all endpoints.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// userAgent is sent with every request; Yahoo rejects empty agents.
	userAgent string
	// header contains additional headers sent with each request.
	header http.Header
}

// Option is a configuration option for the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHeader adds headers sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

var _ source.Source = (*Client)(nil)

// New creates a Yahoo Finance client.
func New(options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		userAgent:  defaultUA,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// getJSON performs one GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("GET %s -> %d: %s", path, res.StatusCode, string(b))
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
