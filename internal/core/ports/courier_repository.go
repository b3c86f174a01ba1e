package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate. Penalty
	// counters are excluded from this write path; see ApplyPenalty.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllDispatchable retrieves couriers eligible for a new offer: online,
	// with a known location, and not currently assigned to an active order.
	GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error)

	// ApplyPenalty raises the courier's priority score, and the daily
	// rejection counter when countRejection is set, as atomic relative
	// increments against the stored row. Concurrent penalties for different
	// offers must not lose updates, so this never goes through a loaded
	// aggregate snapshot.
	ApplyPenalty(ctx context.Context, id kernel.UUID, scoreDelta int, countRejection bool) error
}
