package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler reads unassigned orders straight from the
// database for the operator view.
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for the operator view.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle returns Pending and Exhausted orders, oldest first.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			origin_address,
			destination_address,
			price,
			status,
			created_at
		FROM orders
		WHERE courier_id IS NULL
		  AND status IN (?, ?)
		ORDER BY created_at
	`, int(order.Pending), int(order.Exhausted)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetUnassignedOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&item.OriginAddress,
			&item.DestinationAddress,
			&item.Price,
			&status,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		item.OrderID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.Status = order.Status(status).String()

		orders = append(orders, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
