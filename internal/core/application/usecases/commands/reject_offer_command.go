package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand represents a courier explicitly declining an offer.
type RejectOfferCommand struct { //nolint:recvcheck //using for validation
	offerID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOfferCommand creates a command for a courier rejecting an offer.
// Both identifiers must be valid UUIDs.
func NewRejectOfferCommand(offerID, courierID kernel.UUID) (RejectOfferCommand, error) {
	cmd := RejectOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOfferID(offerID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RejectOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer being rejected.
func (c RejectOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// CourierID returns the identifier of the acting courier.
func (c RejectOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RejectOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *RejectOfferCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
