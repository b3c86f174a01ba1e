package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderEventPublisher notifies the surrounding system about order lifecycle
// changes (created, accepted, exhausted, cancelled). Publishing happens after
// the owning transaction commits; a failed publish is logged and never rolls
// the business change back.
type OrderEventPublisher interface {
	// PublishOrderChanged emits the order's current state to the order-changed topic.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
