package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// AcceptOfferCommandHandler resolves an offer in the courier's favor and
// assigns them the order.
//
// The offer resolution and the order assignment commit together: the offer
// write is a conditional update guarded on the Pending status, so a racing
// accept, reject, or sweep loses cleanly with offer.ErrAlreadyResolved instead
// of double-assigning the order. An offer whose window lapsed is refused even
// before the sweep marks it Expired.
type AcceptOfferCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(uowFactory UoWFactory, publisher ports.OrderEventPublisher) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the offer acceptance.
//
// Error mapping for the transport layer: errs.ErrObjectNotFound for an unknown
// offer, offer.ErrWrongCourier when the caller is not the offer's target, and
// offer.ErrAlreadyResolved when the offer resolved or expired first.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offerRepo := uow.OfferRepository()
	orderRepo := uow.OrderRepository()

	theOffer, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	if err = theOffer.Accept(cmd.CourierID(), now); err != nil {
		return err
	}

	// Lock the order row so acceptance serializes with concurrent dispatch
	// cycles for the same order.
	theOrder, err := orderRepo.GetForUpdate(ctx, theOffer.OrderID())
	if err != nil {
		return err
	}

	if err = offerRepo.Update(ctx, theOffer); err != nil {
		return err
	}

	if err = theOrder.Accept(cmd.CourierID(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, theOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, theOrder)

	return nil
}
