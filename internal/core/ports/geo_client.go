package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// Geo gateway errors. Order creation aborts with no side effects when the
// gateway fails; the transport layer maps these onto client-facing statuses.
var (
	// ErrAddressNotFound is returned when the geocoder cannot resolve an address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrNoRouteFound is returned when no road route connects two points.
	ErrNoRouteFound = errors.New("no route found between points")
	// ErrGeoUnavailable is returned for transport failures and 5xx responses
	// from the geo service.
	ErrGeoUnavailable = errors.New("geo service is unavailable")
)

// Route is the routed road path between two points, as the geo service
// reports it. DistanceKm feeds pricing; DurationMinutes is informational.
type Route struct {
	DistanceKm      float64
	DurationMinutes float64
}

// GeoClient is the gateway to the external geo service.
type GeoClient interface {
	// Geocode resolves a human-readable address into coordinates.
	// Returns ErrAddressNotFound for unresolvable addresses.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)

	// Route computes the routed road path from origin to destination.
	// Returns ErrNoRouteFound when the points are not connected.
	Route(ctx context.Context, origin, destination kernel.GeoPoint) (Route, error)
}
