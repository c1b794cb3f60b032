// Package rawg is a client for the RAWG video game database API.
package rawg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// HTTP client settings. Catalog calls fail fast: a single attempt,
	// no retry, no backoff.
	defaultTimeout = 30 * time.Second
)

// Sentinel errors.
var (
	// ErrNotFound indicates the upstream has no record for the requested game.
	ErrNotFound = errors.New("game not found")
	// ErrUpstream indicates the catalog call failed (network error or
	// non-success status).
	ErrUpstream = errors.New("catalog unavailable")
)

// Client is a RAWG API client.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// New creates a new RAWG client.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// doRequest executes a GET against the RAWG API.
// The API key is always attached, even when empty, matching the upstream's
// expectation that the key parameter is present on every call.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)

	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "GamesHub/1.0")

	c.logger.Debug("rawg request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}
}
