// Package services contains stateless domain services that operate across
// aggregates: pricing quotes from routed distance and deterministic candidate
// ranking for offer dispatch.
package services
