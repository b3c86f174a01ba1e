// Package geo implements the GeoClient port against the JSON-over-HTTP geo
// service that resolves addresses and computes road routes.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const (
	defaultTimeout             = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

// Client calls the geo service over HTTP. It maps the service's 404 responses
// onto the port's sentinel errors and everything else that goes wrong onto
// ports.ErrGeoUnavailable, so order creation can abort cleanly.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a geo service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Geocode resolves an address into coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if strings.TrimSpace(address) == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	query := url.Values{}
	query.Set("address", address)

	var payload struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := c.get(ctx, "/geocode", query, ports.ErrAddressNotFound, &payload); err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(payload.Lat, payload.Lon)
}

// Route computes the routed road path from origin to destination.
func (c *Client) Route(ctx context.Context, origin, destination kernel.GeoPoint) (ports.Route, error) {
	query := url.Values{}
	query.Set("from_lat", formatCoordinate(origin.Latitude()))
	query.Set("from_lon", formatCoordinate(origin.Longitude()))
	query.Set("to_lat", formatCoordinate(destination.Latitude()))
	query.Set("to_lon", formatCoordinate(destination.Longitude()))

	var payload struct {
		DistanceKm      float64 `json:"distance_km"`
		DurationMinutes float64 `json:"duration_minutes"`
	}
	if err := c.get(ctx, "/route", query, ports.ErrNoRouteFound, &payload); err != nil {
		return ports.Route{}, err
	}

	return ports.Route{
		DistanceKm:      payload.DistanceKm,
		DurationMinutes: payload.DurationMinutes,
	}, nil
}

// get performs the request and decodes the body. A 404 becomes notFound; any
// transport error, non-200 status, or undecodable body becomes ErrGeoUnavailable.
func (c *Client) get(ctx context.Context, path string, query url.Values, notFound error, target any) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ports.ErrGeoUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrGeoUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return fmt.Errorf("%w: status %d: %s",
			ports.ErrGeoUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode response: %w", ports.ErrGeoUnavailable, err)
	}

	return nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
