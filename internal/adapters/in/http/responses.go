package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
)

// CourierOffersResponse is the payload for GET /api/v1/couriers/:courierID/offers.
// ServerTime is the clock the countdowns were computed against, so clients can
// render them without trusting their own clocks.
type CourierOffersResponse struct {
	ServerTime time.Time           `json:"server_time"`
	Offers     []CourierOfferItem  `json:"offers"`
}

// CourierOfferItem is one live offer in the poll response.
type CourierOfferItem struct {
	OfferID            string    `json:"offer_id"`
	OrderID            string    `json:"order_id"`
	OriginAddress      string    `json:"origin_address"`
	DestinationAddress string    `json:"destination_address"`
	DistanceToPickupKm float64   `json:"distance_to_pickup_km"`
	DeliveryFee        string    `json:"delivery_fee"`
	OfferedAt          time.Time `json:"offered_at"`
	ExpiresAt          time.Time `json:"expires_at"`
	RemainingSeconds   int64     `json:"remaining_seconds"`
}

// UnassignedOrderResponse is one row of the operator's unassigned-orders view.
type UnassignedOrderResponse struct {
	OrderID            string    `json:"order_id"`
	OriginAddress      string    `json:"origin_address"`
	DestinationAddress string    `json:"destination_address"`
	Price              string    `json:"price"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

func toCourierOffersResponse(result queries.GetCourierOffersQueryResponse) CourierOffersResponse {
	offers := make([]CourierOfferItem, len(result.Offers))
	for i, item := range result.Offers {
		offers[i] = CourierOfferItem{
			OfferID:            item.OfferID.String(),
			OrderID:            item.OrderID.String(),
			OriginAddress:      item.OriginAddress,
			DestinationAddress: item.DestinationAddress,
			DistanceToPickupKm: item.DistanceToPickupKm,
			DeliveryFee:        item.DeliveryFee.String(),
			OfferedAt:          item.OfferedAt,
			ExpiresAt:          item.ExpiresAt,
			RemainingSeconds:   item.RemainingSeconds,
		}
	}

	return CourierOffersResponse{
		ServerTime: result.ServerTime,
		Offers:     offers,
	}
}
