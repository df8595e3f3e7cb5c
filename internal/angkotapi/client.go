// Package angkotapi is the client for the angkot recommendation backend.
package angkotapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cariangkot.id/internal/geo"
)

// DefaultTimeout bounds a single backend call when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 8 << 20

// Options configures a Client. BaseURL is required.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the angkot REST backend. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

// NewClient validates opts and returns a ready Client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("angkot api: base URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("angkot api: parse base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("angkot api: base URL %q must be an absolute http(s) URL", raw)
	}

	c := &Client{
		baseURL: u,
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		logger:  opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetRecommendations asks the backend for angkot routes between start and end.
// The backend's JSON document is returned as-is.
func (c *Client) GetRecommendations(ctx context.Context, start, end geo.Coordinate) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("start_lat", formatDegrees(start.Lat))
	q.Set("start_lng", formatDegrees(start.Lon))
	q.Set("end_lat", formatDegrees(end.Lat))
	q.Set("end_lng", formatDegrees(end.Lon))

	body, err := c.get(ctx, "rekomendasi-angkot", q)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		err := errors.New("angkot api: rekomendasi-angkot returned invalid JSON")
		c.logger.Error("API error", "path", "/rekomendasi-angkot", "error", err)
		return nil, err
	}
	return json.RawMessage(body), nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("angkot api: create request: %w", err)
	}
	setDefaultHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(req, fmt.Errorf("angkot api: GET /%s: %w", path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.fail(req, fmt.Errorf("angkot api: read /%s response: %w", path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(req, &APIError{
			StatusCode: resp.StatusCode,
			Path:       "/" + path,
			Body:       strings.TrimSpace(string(data)),
		})
	}
	return data, nil
}

// setDefaultHeaders applies the headers every backend call carries. The
// backend is usually exposed through ngrok, whose browser interstitial would
// otherwise replace the JSON body.
func setDefaultHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("ngrok-skip-browser-warning", "any-value")
}

// fail logs a failed call once and hands the error back to the caller.
func (c *Client) fail(req *http.Request, err error) error {
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		c.logger.Error("API error", "url", safeURL, "status", apiErr.StatusCode, "body", apiErr.Body)
	} else {
		c.logger.Error("API error", "url", safeURL, "error", err)
	}
	return err
}

// Ping checks that the backend answers at all. Any response below 500 counts
// as reachable since the backend root has no dedicated health route.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("angkot api: create ping request: %w", err)
	}
	setDefaultHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("angkot api: ping %s: %w", c.baseURL.Host, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode >= 500 {
		return &APIError{StatusCode: resp.StatusCode, Path: "/"}
	}
	return nil
}
