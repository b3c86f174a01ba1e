package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ErrInvalidDistance is returned when a distance is negative, NaN, or infinite.
// Pricing refuses such input before any computation.
var ErrInvalidDistance = errors.New("distance must be a finite non-negative number")

const moneyPlaces = 2

// Rates holds the pricing parameters as an explicit value object, injected at
// construction instead of read from global configuration.
type Rates struct {
	// BaseFee is the flat component charged on every delivery.
	BaseFee decimal.Decimal
	// PerKm is the charge per routed kilometer.
	PerKm decimal.Decimal
	// PlatformFeePercent is the marketplace's percentage cut of the delivery fee.
	PlatformFeePercent decimal.Decimal
}

// DefaultRates returns the standard marketplace rates: base fee 5, 2 per
// kilometer, 20 percent platform cut.
func DefaultRates() Rates {
	return Rates{
		BaseFee:            decimal.NewFromInt(5),
		PerKm:              decimal.NewFromInt(2),
		PlatformFeePercent: decimal.NewFromInt(20),
	}
}

// PricingService computes order prices from routed distance.
//
// The delivery fee is baseFee + distanceKm * perKm; the platform fee is the
// configured percentage of the delivery fee; the total price is their sum.
// Every component is rounded half-up to cents, and the rounded components sum
// exactly to the rounded price.
//
// Example:
//
//	pricing, _ := services.NewPricingService(services.DefaultRates())
//	quote, err := pricing.Quote(10.0)
//	// quote.DeliveryFee = 25.00, quote.PlatformFee = 5.00, quote.Price = 30.00
type PricingService struct {
	rates Rates
}

// NewPricingService creates a PricingService with the given rates. All rates
// must be non-negative.
func NewPricingService(rates Rates) (PricingService, error) {
	if rates.BaseFee.IsNegative() || rates.PerKm.IsNegative() || rates.PlatformFeePercent.IsNegative() {
		return PricingService{}, errors.New("pricing rates must be non-negative")
	}

	return PricingService{rates: rates}, nil
}

// Quote prices a delivery over the given routed distance.
//
// Parameters:
//   - distanceKm: routed road distance in kilometers
//
// Returns:
//   - order.Pricing: delivery fee, platform fee, and total, each rounded
//     half-up to cents
//   - error: ErrInvalidDistance for negative, NaN, or infinite input
func (p PricingService) Quote(distanceKm float64) (order.Pricing, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return order.Pricing{}, ErrInvalidDistance
	}

	distance := decimal.NewFromFloat(distanceKm)

	deliveryFee := p.rates.BaseFee.Add(distance.Mul(p.rates.PerKm)).Round(moneyPlaces)
	platformFee := deliveryFee.Mul(p.rates.PlatformFeePercent).
		Div(decimal.NewFromInt(100)).Round(moneyPlaces)

	// Price is the sum of the rounded components so the aggregate's
	// fee-sum invariant holds exactly.
	price := deliveryFee.Add(platformFee)

	return order.Pricing{
		DeliveryFee: deliveryFee,
		PlatformFee: platformFee,
		Price:       price,
	}, nil
}
