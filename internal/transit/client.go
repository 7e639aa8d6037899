// Package transit is the boundary adapter for the transport.rest upstream.
// Raw upstream payloads are decoded here and nowhere else; callers only see
// the types in this package.
package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is an HTTP client for a transport.rest style HAFAS API.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache
	logger  *slog.Logger
}

// NewClient creates an upstream API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:  newCache(30 * time.Second),
		logger: logger,
	}
}

// Locations searches the upstream stop directory by name.
// Addresses and points of interest are excluded; only stops come back.
func (c *Client) Locations(ctx context.Context, query string, limit int) ([]Location, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("results", strconv.Itoa(limit))
	q.Set("addresses", "false")
	q.Set("poi", "false")
	reqURL := fmt.Sprintf("%s/locations?%s", c.baseURL, q.Encode())

	if cached, ok := c.cache.get(reqURL); ok {
		return cached.([]Location), nil
	}

	resp, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("locations %q: %w", query, err)
	}
	defer resp.Body.Close()

	var result []Location
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}

	c.cache.set(reqURL, result)
	return result, nil
}

// Departures fetches upcoming departures for a stop within the lookahead
// window (minutes), up to max results.
func (c *Client) Departures(ctx context.Context, stopID string, lookaheadMin, max int) ([]Departure, error) {
	q := url.Values{}
	q.Set("duration", strconv.Itoa(lookaheadMin))
	q.Set("results", strconv.Itoa(max))
	reqURL := fmt.Sprintf("%s/stops/%s/departures?%s", c.baseURL, url.PathEscape(stopID), q.Encode())

	if cached, ok := c.cache.get(reqURL); ok {
		return cached.([]Departure), nil
	}

	resp, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("departures for stop %s: %w", stopID, err)
	}
	defer resp.Body.Close()

	var result DeparturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode departures: %w", err)
	}

	c.cache.set(reqURL, result.Departures)
	return result.Departures, nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}
