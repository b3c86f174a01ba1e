package services

import (
	"sort"
	"strings"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CandidateRanker orders a pool of dispatchable couriers for an order.
//
// The ranking is deterministic and ascending: lower priority score first, then
// shorter straight-line distance to the order origin, then courier id as the
// final tie-break. Straight-line distance keeps ranking cheap; routed distance
// is reserved for pricing.
//
// The ranker assumes a pre-filtered pool: every candidate must be valid and
// have a reported location. Availability filtering (online, no active order,
// not yet offered this order) belongs to the caller.
type CandidateRanker struct{}

// NewCandidateRanker creates a CandidateRanker.
func NewCandidateRanker() CandidateRanker {
	return CandidateRanker{}
}

// Rank returns the candidates ordered most-preferred-first. The input slice is
// not modified.
//
// Returns an error when the origin is invalid, or when any candidate is
// invalid or has no reported location.
func (r CandidateRanker) Rank(
	origin kernel.GeoPoint,
	candidates []*courier.Courier,
) ([]*courier.Courier, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	type scored struct {
		courier    *courier.Courier
		distanceKm float64
	}

	pool := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		distance, err := c.DistanceToKm(origin)
		if err != nil {
			return nil, err
		}

		pool = append(pool, scored{courier: c, distanceKm: distance})
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]

		if a.courier.PriorityScore() != b.courier.PriorityScore() {
			return a.courier.PriorityScore() < b.courier.PriorityScore()
		}
		if a.distanceKm != b.distanceKm {
			return a.distanceKm < b.distanceKm
		}
		return strings.Compare(a.courier.ID().String(), b.courier.ID().String()) < 0
	})

	ranked := make([]*courier.Courier, len(pool))
	for i, s := range pool {
		ranked[i] = s.courier
	}

	return ranked, nil
}
