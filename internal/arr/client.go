package arr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const apiKeyHeader = "X-Api-Key"

// Endpoint paths relative to the instance base URL.
const (
	SeriesPath       = "/api/v3/series"
	MoviePath        = "/api/v3/movie"
	SystemStatusPath = "/api/v3/system/status"
)

// HTTPDoer describes the HTTP client used to reach an *arr instance.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when an instance answers with an unexpected status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d", e.Method, e.URL, e.StatusCode)
}

// Response carries the raw outcome of an update request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client talks to one Sonarr or Radarr instance.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport defaults.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a client for the instance at baseURL.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("arr base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse arr base url: %w", err)
	}
	client := &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListSeries fetches every series known to a Sonarr instance.
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	var out []Series
	if err := c.getJSON(ctx, SeriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSeries submits a series edit and asks Sonarr to move files.
func (c *Client) UpdateSeries(ctx context.Context, id int64, payload SeriesUpdate) (*Response, error) {
	return c.put(ctx, entryPath(SeriesPath, id), payload)
}

// ListMovies fetches every movie known to a Radarr instance.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	var out []Movie
	if err := c.getJSON(ctx, MoviePath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMovie submits a movie edit and asks Radarr to move files.
func (c *Client) UpdateMovie(ctx context.Context, id int64, payload MovieUpdate) (*Response, error) {
	return c.put(ctx, entryPath(MoviePath, id), payload)
}

// SystemStatus returns the instance identity, used to verify connectivity
// and the API key.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var out SystemStatus
	if err := c.getJSON(ctx, SystemStatusPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func entryPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10) + "?moveFiles=true"
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: http.MethodGet, URL: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// put sends the payload and returns the raw response regardless of status;
// callers decide which codes count as success.
func (c *Client) put(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
}
