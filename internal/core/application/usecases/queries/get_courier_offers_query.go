// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCourierOffersQueryIsNotConstructed = errors.New(
	"GetCourierOffersQuery must be created via NewGetCourierOffersQuery constructor",
)

// GetCourierOffersQuery retrieves a courier's live offers. Courier clients
// poll it to render the offer screen with a countdown.
type GetCourierOffersQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierOffersQuery creates a query for the courier's pending offers.
func NewGetCourierOffersQuery(courierID kernel.UUID) (GetCourierOffersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierOffersQuery{}, err
	}

	return GetCourierOffersQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOffersQueryIsNotConstructed)
}

// CourierID returns the identifier of the polling courier.
func (q GetCourierOffersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// CourierOfferResponse is one live offer in the read model.
type CourierOfferResponse struct {
	OfferID            kernel.UUID
	OrderID            kernel.UUID
	OriginAddress      string
	DestinationAddress string
	DistanceToPickupKm float64
	DeliveryFee        decimal.Decimal
	OfferedAt          time.Time
	ExpiresAt          time.Time
	// RemainingSeconds is max(0, expiresAt - serverTime), computed on the
	// server so clients can count down without trusting their own clocks.
	RemainingSeconds int64
}

// GetCourierOffersQueryResponse carries the courier's live offers together
// with the server time the countdowns were computed against.
type GetCourierOffersQueryResponse struct {
	ServerTime time.Time
	Offers     []CourierOfferResponse
}
