package backend

import (
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

	"pdfsearch/internal/domain"
)

// maxBodySize bounds how much of a response body is read
const maxBodySize = 10 << 20

// Backend answers search requests. Implementations must be safe for concurrent use.
type Backend interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// Client calls the search endpoint over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero disables the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the endpoint rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL builds GET /search?q=<query>&page=<page> with the query percent-encoded
func (c *Client) SearchURL(query string, page int) string {
	if page < 1 {
		page = 1
	}
	q := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return c.baseURL + "/search?q=" + q + "&page=" + strconv.Itoa(page)
}

// Search performs one request. Transport failures wrap domain.ErrBackendUnavailable;
// non-success statuses return *domain.BackendError.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(req.Query, req.Page), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "pdfsearch")
	if req.RequestID != "" {
		httpReq.Header.Set("X-Request-ID", req.RequestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && c.timeout > 0 {
			return nil, fmt.Errorf("%w: request timed out after %s", domain.ErrBackendUnavailable, c.timeout)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.BackendError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	var decoded domain.SearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.BackendError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response: %v", err),
		}
	}
	if decoded.Results == nil {
		decoded.Results = []domain.ResultItem{}
	}

	return &decoded, nil
}

// errorMessage extracts {"error": "..."} from a failure body, if present
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
