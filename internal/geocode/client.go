// Package geocode resolves locality names to coordinates through a
// Nominatim-compatible HTTP endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

// Result is one geocode hit.
type Result struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// nominatimPlace mirrors the upstream response shape; coordinates arrive
// as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client queries the geocoding endpoint. A built-in limiter enforces the
// upstream minimum spacing between calls, so batch and single-post paths
// share one pacing mechanism.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	log       logger.Logger
}

// NewClient builds a geocode client from config.
func NewClient(cfg config.GeocodeConfig, userAgent string, log logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(cfg.MinSpacing), 1),
		log:       log,
	}
}

// Geocode resolves a place name scoped to Delhi. A nil result with nil
// error means no hit, which is not an error condition. Transport failures
// return an UnreachableError; callers fall back to city-centre coordinates.
func (c *Client) Geocode(ctx context.Context, place string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode pacing: %w", err)
	}

	query := url.Values{}
	query.Set("q", place+", Delhi, India")
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.UnreachableError{Upstream: "geocode", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.UnreachableError{
			Upstream: "geocode",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &domain.UnreachableError{Upstream: "geocode", Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(places) == 0 {
		c.log.Debug("geocode returned no result", logger.String("place", place))
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, &domain.UnreachableError{
			Upstream: "geocode",
			Err:      fmt.Errorf("malformed coordinates %q,%q", places[0].Lat, places[0].Lon),
		}
	}

	return &Result{Latitude: lat, Longitude: lng, DisplayName: places[0].DisplayName}, nil
}
