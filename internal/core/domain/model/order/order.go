package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOriginAddressIsRequired is returned for an empty pickup address.
	ErrOriginAddressIsRequired = errs.NewValueIsRequiredError("origin address")
	// ErrDestinationAddressIsRequired is returned for an empty drop-off address.
	ErrDestinationAddressIsRequired = errs.NewValueIsRequiredError("destination address")
)

// Order is the aggregate root for a delivery request. It carries the routed
// distance and computed price and a status driven by offer-dispatch outcomes:
// an order is created Pending, becomes Accepted when a courier accepts a
// pending offer, or Exhausted when dispatch runs out of candidates.
//
// Invariants:
//   - at most one non-nil courier assignment at a time
//   - status transitions are monotonic per the Status state machine
//   - price components are never negative and price = deliveryFee + platformFee
type Order struct {
	id kernel.UUID

	originAddress      string
	destinationAddress string
	origin             kernel.GeoPoint
	destination        kernel.GeoPoint

	// distanceKm is the routed road distance used for pricing.
	distanceKm  float64
	deliveryFee decimal.Decimal
	platformFee decimal.Decimal
	price       decimal.Decimal

	status    Status
	courierID *kernel.UUID

	createdAt   time.Time
	acceptedAt  *time.Time
	completedAt *time.Time

	isConstructed bool
}

// Pricing bundles the three money components computed for an order.
type Pricing struct {
	DeliveryFee decimal.Decimal
	PlatformFee decimal.Decimal
	Price       decimal.Decimal
}

// NewOrder creates a Pending order with no courier assigned.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - originAddress / destinationAddress: human-readable addresses (non-empty)
//   - origin / destination: geocoded coordinates (must be constructed)
//   - distanceKm: routed distance (must be non-negative)
//   - pricing: money components from the pricing service
//   - createdAt: server time of creation
func NewOrder(
	id kernel.UUID,
	originAddress, destinationAddress string,
	origin, destination kernel.GeoPoint,
	distanceKm float64,
	pricing Pricing,
	createdAt time.Time,
) (*Order, error) {
	ord := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		ord.setID(id),
		ord.setAddresses(originAddress, destinationAddress),
		ord.setRoute(origin, destination, distanceKm),
		ord.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return ord, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// status, assignment, and timestamps. The restored aggregate behaves
// identically to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	originAddress, destinationAddress string,
	origin, destination kernel.GeoPoint,
	distanceKm float64,
	pricing Pricing,
	status Status,
	courierID *kernel.UUID,
	createdAt time.Time,
	acceptedAt, completedAt *time.Time,
) (*Order, error) {
	ord := &Order{
		createdAt:     createdAt,
		acceptedAt:    acceptedAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		ord.setID(id),
		ord.setAddresses(originAddress, destinationAddress),
		ord.setRoute(origin, destination, distanceKm),
		ord.setPricing(pricing),
		ord.setStatus(status),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}
	ord.courierID = courierID

	return ord, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OriginAddress returns the pickup address.
func (o *Order) OriginAddress() string {
	return o.originAddress
}

// DestinationAddress returns the drop-off address.
func (o *Order) DestinationAddress() string {
	return o.destinationAddress
}

// Origin returns the geocoded pickup location.
func (o *Order) Origin() kernel.GeoPoint {
	return o.origin
}

// Destination returns the geocoded drop-off location.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// DistanceKm returns the routed distance used for pricing.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// DeliveryFee returns the distance-based fee component.
func (o *Order) DeliveryFee() decimal.Decimal {
	return o.deliveryFee
}

// PlatformFee returns the marketplace's cut.
func (o *Order) PlatformFee() decimal.Decimal {
	return o.platformFee
}

// Price returns the total charged to the customer.
func (o *Order) Price() decimal.Decimal {
	return o.price
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns when a courier accepted the order, or nil.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// CompletedAt returns when the order was delivered, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// IsAssigned reports whether a courier currently holds the order.
func (o *Order) IsAssigned() bool {
	return o.courierID != nil
}

// Accept assigns the order to the courier who accepted a pending offer and
// records the acceptance time. Only Pending orders can be accepted, which
// preserves the at-most-one-assignment invariant.
func (o *Order) Accept(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.acceptedAt = &at
	return nil
}

// MarkPickedUp records that the assigned courier collected the package.
func (o *Order) MarkPickedUp() error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered records the completed delivery.
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.completedAt = &at
	return nil
}

// Exhaust marks a still-unassigned order as out of candidates. The order is
// reported to operators; the core never cancels it automatically.
func (o *Order) Exhaust() error {
	newStatus, err := o.status.Exhaust()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Redispatch returns an Exhausted order to the Pending pool so the dispatcher
// can offer it again. Operator-triggered.
func (o *Order) Redispatch() error {
	newStatus, err := o.status.Redispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel terminates an unassigned order. Operator-triggered.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAddresses(originAddress, destinationAddress string) error {
	if originAddress == "" {
		return ErrOriginAddressIsRequired
	}
	if destinationAddress == "" {
		return ErrDestinationAddressIsRequired
	}

	o.originAddress = originAddress
	o.destinationAddress = destinationAddress
	return nil
}

func (o *Order) setRoute(origin, destination kernel.GeoPoint, distanceKm float64) error {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return err
	}
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}

	o.origin = origin
	o.destination = destination
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if pricing.DeliveryFee.IsNegative() || pricing.PlatformFee.IsNegative() || pricing.Price.IsNegative() {
		return errs.NewValueIsInvalidError("pricing")
	}
	if !pricing.DeliveryFee.Add(pricing.PlatformFee).Equal(pricing.Price) {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("price %s is not deliveryFee %s + platformFee %s",
				pricing.Price, pricing.DeliveryFee, pricing.PlatformFee))
	}

	o.deliveryFee = pricing.DeliveryFee
	o.platformFee = pricing.PlatformFee
	o.price = pricing.Price
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
