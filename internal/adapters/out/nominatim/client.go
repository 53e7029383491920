// Package nominatim implements the Geocoder port over the OpenStreetMap
// Nominatim search API. One request per resolution attempt, single best
// match, bounded timeout. Every failure mode collapses to "not found"; the
// conversation flow treats that as a recoverable condition.
package nominatim

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/ports"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultTimeout bounds one lookup end to end. A slow geocoder must never
// hang a conversation.
const DefaultTimeout = 10 * time.Second

// Client resolves free-text queries against a Nominatim server.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// searchResult is the subset of a Nominatim jsonv2 search hit the client
// reads. Coordinates arrive as strings.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NewClient creates a Nominatim client. The user agent is mandatory per the
// Nominatim usage policy and identifies this bot to the service.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "nominatim"),
	}
}

// Resolve looks up the single best match for the query.
// Transport errors, non-200 responses, malformed payloads, unparsable
// coordinates, and empty result sets all return found == false.
func (c *Client) Resolve(ctx context.Context, query string) (ports.ResolvedAddress, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		c.logger.Debug("building request failed", "error", err)
		return ports.ResolvedAddress{}, false
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "ru")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("lookup failed", "query", query, "error", err)
		return ports.ResolvedAddress{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("unexpected status", "query", query, "status", resp.StatusCode)
		return ports.ResolvedAddress{}, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Debug("decoding response failed", "query", query, "error", err)
		return ports.ResolvedAddress{}, false
	}

	if len(results) == 0 {
		return ports.ResolvedAddress{}, false
	}

	top := results[0]
	lat, latErr := strconv.ParseFloat(top.Lat, 64)
	lon, lonErr := strconv.ParseFloat(top.Lon, 64)
	if latErr != nil || lonErr != nil {
		c.logger.Debug("unparsable coordinates", "query", query, "lat", top.Lat, "lon", top.Lon)
		return ports.ResolvedAddress{}, false
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		c.logger.Debug("out-of-range coordinates", "query", query, "error", err)
		return ports.ResolvedAddress{}, false
	}

	displayName := top.DisplayName
	if displayName == "" {
		displayName = query
	}

	return ports.ResolvedAddress{DisplayName: displayName, Point: point}, true
}

// searchURL builds the single-best-match search request URL.
func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	return c.baseURL + "/search?" + params.Encode()
}
