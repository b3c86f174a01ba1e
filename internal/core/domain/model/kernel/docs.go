// Package kernel provides core domain primitives used throughout the domain
// model of the dispatch service.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated WGS84 coordinate pair with haversine distance
//
// These primitives enforce domain invariants at construction time, are
// immutable, and are safe for concurrent use.
package kernel
