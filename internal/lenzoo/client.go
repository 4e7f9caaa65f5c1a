// Package lenzoo is the HTTP client for the Lenzoo+ admin REST API.
//
// Every call attaches the admin's bearer token when one is set, decodes the
// endpoint's response envelope into a typed value and reports failures as
// *TransportError (no response) or *APIError (server-reported failure).
// Nothing is retried.
package lenzoo

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"lenzooadmin/internal/inflight"
)

const maxResponseBytes = 10 << 20

type Client struct {
	httpclient *http.Client
	api        string
	token      string
	tracker    *inflight.Tracker
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpclient = hc }
}

func WithTracker(t *inflight.Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpclient: &http.Client{Timeout: timeout},
		api:        strings.TrimSuffix(baseURL, "/"),
		tracker:    inflight.NewTracker(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a client that authenticates as the admin holding token.
// An empty token sends no Authorization header.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) Tracker() *inflight.Tracker {
	return c.tracker
}

// build URL with path
func (c *Client) apipath(path string) string {
	return c.api + "/" + strings.TrimPrefix(path, "/")
}
