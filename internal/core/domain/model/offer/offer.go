package offer

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOfferIsNotConstructed is returned when an Offer instance was not
	// created through the NewOffer or RestoreOffer factory methods.
	ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

	// ErrWrongCourier is returned when a courier tries to resolve an offer
	// addressed to somebody else. Surfaced as Forbidden and logged as a
	// potential security-relevant event by the transport layer.
	ErrWrongCourier = errors.New("offer belongs to a different courier")
)

// Offer is one timed, exclusive proposal of an order to one courier.
//
// Offers are issued sequentially, never broadcast: for a given order at most
// one offer may be Pending at any instant. The expiry deadline is immutable
// once created and is evaluated lazily as a timestamp predicate: an offer
// whose window lapsed is treated as already expired at read time, even before
// the sweep marks it Expired.
type Offer struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID

	// distanceToPickupKm is the straight-line distance from the courier to the
	// order origin at the moment the offer was issued.
	distanceToPickupKm float64

	status    Status
	offeredAt time.Time
	expiresAt time.Time

	isConstructed bool
}

// NewOffer creates a Pending offer whose window is [offeredAt, offeredAt+window).
//
// Parameters:
//   - id, orderID, courierID: valid UUIDs
//   - distanceToPickupKm: non-negative straight-line distance
//   - offeredAt: server time of issuance
//   - window: positive offer duration
func NewOffer(
	id, orderID, courierID kernel.UUID,
	distanceToPickupKm float64,
	offeredAt time.Time,
	window time.Duration,
) (*Offer, error) {
	if window <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("window",
			fmt.Errorf("%s is not a positive duration", window))
	}

	off := &Offer{
		status:        Pending,
		offeredAt:     offeredAt,
		expiresAt:     offeredAt.Add(window),
		isConstructed: true,
	}

	if err := errors.Join(
		off.setIDs(id, orderID, courierID),
		off.setDistanceToPickup(distanceToPickupKm),
	); err != nil {
		return nil, err
	}

	return off, nil
}

// RestoreOffer reconstructs an Offer from persistent storage.
func RestoreOffer(
	id, orderID, courierID kernel.UUID,
	distanceToPickupKm float64,
	status Status,
	offeredAt, expiresAt time.Time,
) (*Offer, error) {
	off := &Offer{
		offeredAt:     offeredAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}

	if err := errors.Join(
		off.setIDs(id, orderID, courierID),
		off.setDistanceToPickup(distanceToPickupKm),
		off.setStatus(status),
	); err != nil {
		return nil, err
	}

	return off, nil
}

// Validate ensures the Offer was created through a factory method.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}

	return nil
}

// IsEqual compares two offers by identifier.
func (o *Offer) IsEqual(other *Offer) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the offer's unique identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// OrderID returns the identifier of the offered order.
func (o *Offer) OrderID() kernel.UUID {
	return o.orderID
}

// CourierID returns the identifier of the courier the offer targets.
func (o *Offer) CourierID() kernel.UUID {
	return o.courierID
}

// DistanceToPickupKm returns the courier-to-origin distance at issuance.
func (o *Offer) DistanceToPickupKm() float64 {
	return o.distanceToPickupKm
}

// Status returns the current offer status.
func (o *Offer) Status() Status {
	return o.status
}

// OfferedAt returns the issuance timestamp.
func (o *Offer) OfferedAt() time.Time {
	return o.offeredAt
}

// ExpiresAt returns the immutable expiry deadline.
func (o *Offer) ExpiresAt() time.Time {
	return o.expiresAt
}

// IsExpired reports whether the offer window has lapsed at the given instant.
// The deadline itself counts as expired: an offer is acceptable strictly
// before expiresAt.
func (o *Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.expiresAt)
}

// RemainingSeconds returns the whole seconds left in the window, clamped at
// zero, for client countdowns rendered against server time.
func (o *Offer) RemainingSeconds(now time.Time) int64 {
	remaining := int64(o.expiresAt.Sub(now) / time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Accept resolves the offer in favor of the courier.
//
// Fails with ErrWrongCourier when courierID does not match the offer's target,
// and with ErrAlreadyResolved when the offer is no longer Pending or its
// window has lapsed. An expired but not yet swept offer must never be
// accepted.
func (o *Offer) Accept(courierID kernel.UUID, now time.Time) error {
	if err := o.checkCourier(courierID); err != nil {
		return err
	}
	if o.status == Pending && o.IsExpired(now) {
		return ErrAlreadyResolved
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject resolves the offer as declined by the courier. Identity and state
// checks match Accept.
func (o *Offer) Reject(courierID kernel.UUID, now time.Time) error {
	if err := o.checkCourier(courierID); err != nil {
		return err
	}
	if o.status == Pending && o.IsExpired(now) {
		return ErrAlreadyResolved
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Expire resolves a lapsed Pending offer. The sweep calls this only for offers
// whose deadline has passed; expiring a live offer is a programming error.
func (o *Offer) Expire(now time.Time) error {
	if o.status == Pending && !o.IsExpired(now) {
		return errs.NewValueIsInvalidErrorWithCause("offer",
			fmt.Errorf("offer %s does not expire until %s", o.id, o.expiresAt.Format(time.RFC3339)))
	}

	newStatus, err := o.status.Expire()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Offer) checkCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !o.courierID.IsEqual(courierID) {
		return ErrWrongCourier
	}
	return nil
}

func (o *Offer) setIDs(id, orderID, courierID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return err
	}

	o.id = id
	o.orderID = orderID
	o.courierID = courierID
	return nil
}

func (o *Offer) setDistanceToPickup(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceToPickupKm",
			fmt.Errorf("%f is negative", distanceKm))
	}

	o.distanceToPickupKm = distanceKm
	return nil
}

func (o *Offer) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
