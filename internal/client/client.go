// Package client talks to the remote products REST resource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const jsonMediaType = "application/json"

// ErrEmptyBaseURL is returned by New when no API address is given.
var ErrEmptyBaseURL = errors.New("products API base URL is empty")

// Client is a products API client. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	metrics *Metrics
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithRateLimit caps outgoing requests at rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx answer from the products API.
type APIError struct {
	StatusCode int
	// Message is the server-provided message, or the status text when the
	// body carried none.
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("products API: %d %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// resolve returns the absolute URL for an escaped path relative to the base,
// with rawQuery attached as is.
func (c *Client) resolve(path, rawQuery string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	u := c.base.ResolveReference(ref)
	u.RawQuery = rawQuery
	return u, nil
}

// do performs an HTTP request against path. A non-nil in is sent as the JSON body; a
// non-nil out receives the decoded JSON response. The returned header is
// that of the response, when one arrived.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, in, out any) (http.Header, error) {
	u, err := c.resolve(path, rawQuery)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", jsonMediaType)
	req.Header.Set("Accept", jsonMediaType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		c.logger.Warn("products API request failed",
			zap.String("method", method), zap.String("url", u.String()), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	c.metrics.observe(method, resp.StatusCode, time.Since(start))
	c.logger.Debug("products API request",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if err := checkHTTPStatus(resp); err != nil {
		return resp.Header, err
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}

// checkHTTPStatus turns a non-2xx response into an *APIError, picking up
// the server's message when the body is a JSON error document.
func checkHTTPStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil {
		switch {
		case er.Message != "":
			apiErr.Message = er.Message
		case er.Error != "":
			apiErr.Message = er.Error
		}
	}
	return apiErr
}
