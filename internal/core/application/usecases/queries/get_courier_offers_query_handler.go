package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCourierOffersQueryHandler reads a courier's live offers straight from
// the database, bypassing the aggregates for read performance.
//
// Lazily expired offers are filtered out in the query: an offer whose deadline
// passed is never shown, even before the sweep marks it Expired.
type GetCourierOffersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierOffersQueryHandler creates a handler for offer polling.
func NewGetCourierOffersQueryHandler(db *gorm.DB) GetCourierOffersQueryHandler {
	return GetCourierOffersQueryHandler{db: db}
}

// Handle returns the courier's pending, non-expired offers joined with their
// order details, newest last, plus the server time used for the countdowns.
func (h GetCourierOffersQueryHandler) Handle(
	ctx context.Context,
	query GetCourierOffersQuery,
) (GetCourierOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierOffersQueryResponse{}, err
	}

	now := time.Now().UTC()
	response := GetCourierOffersQueryResponse{
		ServerTime: now,
		Offers:     make([]CourierOfferResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_id,
			o.distance_to_pickup_km,
			o.offered_at,
			o.expires_at,
			ord.origin_address,
			ord.destination_address,
			ord.delivery_fee
		FROM offers o
		JOIN orders ord ON ord.id = o.order_id
		WHERE o.courier_id = ?
		  AND o.status = ?
		  AND o.expires_at > ?
		ORDER BY o.offered_at
	`, query.CourierID().Bytes(), int(offer.Pending), now).Rows()
	if err != nil {
		return GetCourierOffersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CourierOfferResponse
		var offerID, orderID uuid.UUID
		var deliveryFee decimal.Decimal

		err = rows.Scan(
			&offerID,
			&orderID,
			&item.DistanceToPickupKm,
			&item.OfferedAt,
			&item.ExpiresAt,
			&item.OriginAddress,
			&item.DestinationAddress,
			&deliveryFee,
		)
		if err != nil {
			return GetCourierOffersQueryResponse{}, err
		}

		item.OfferID, err = kernel.UUIDFromBytes(offerID[:])
		if err != nil {
			return GetCourierOffersQueryResponse{}, err
		}
		item.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return GetCourierOffersQueryResponse{}, err
		}

		item.DeliveryFee = deliveryFee
		item.RemainingSeconds = remainingSeconds(item.ExpiresAt, now)
		response.Offers = append(response.Offers, item)
	}

	if err = rows.Err(); err != nil {
		return GetCourierOffersQueryResponse{}, err
	}

	return response, nil
}

func remainingSeconds(expiresAt, now time.Time) int64 {
	remaining := int64(expiresAt.Sub(now) / time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}
