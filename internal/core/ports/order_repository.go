// Package ports defines the contracts between the dispatch core and
// infrastructure: repositories, the unit of work, the geo gateway, and the
// event publisher. Adapters implement them; use cases depend on them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Callers mutate
	// orders under the row lock taken by GetForUpdate, which serializes
	// conflicting status changes; the write itself is keyed by id only.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. Dispatch serializes per-order decisions on
	// this lock so two concurrent dispatch cycles cannot both issue an offer.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves orders with no courier: Pending and Exhausted.
	// Used by the operator view to surface orders that ran out of candidates.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)
}
