package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// RejectOfferCommandHandler resolves an offer as declined, penalizes the
// courier, and immediately offers the order to the next candidate.
//
// The offer resolution, the penalty, and the follow-up offer commit together:
// either the rejection fully applies or nothing does. The penalty is an atomic
// relative increment in storage, never a read-modify-write on a loaded
// snapshot.
type RejectOfferCommandHandler struct {
	uowFactory UoWFactory
	settings   DispatchSettings
	dispatcher offerDispatcher
	publisher  ports.OrderEventPublisher
}

// NewRejectOfferCommandHandler creates a handler for offer rejection.
func NewRejectOfferCommandHandler(
	uowFactory UoWFactory,
	settings DispatchSettings,
	publisher ports.OrderEventPublisher,
) (RejectOfferCommandHandler, error) {
	if err := settings.Validate(); err != nil {
		return RejectOfferCommandHandler{}, err
	}

	return RejectOfferCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		dispatcher: newOfferDispatcher(settings),
		publisher:  publisher,
	}, nil
}

// Handle processes the offer rejection.
//
// Identity and state checks match acceptance: errs.ErrObjectNotFound,
// offer.ErrWrongCourier, offer.ErrAlreadyResolved. On success the courier's
// rejectionsToday grows by one and priorityScore by the reject penalty, and
// the next candidate (if any) receives a fresh offer; with no candidates left
// the order becomes Exhausted.
func (h RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
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

	if err = theOffer.Reject(cmd.CourierID(), now); err != nil {
		return err
	}

	theOrder, err := orderRepo.GetForUpdate(ctx, theOffer.OrderID())
	if err != nil {
		return err
	}

	if err = offerRepo.Update(ctx, theOffer); err != nil {
		return err
	}

	if err = uow.CourierRepository().ApplyPenalty(ctx, cmd.CourierID(), h.settings.RejectPenalty, true); err != nil {
		return err
	}

	if err = h.dispatcher.dispatchNext(ctx, uow, theOrder, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if theOrder.Status() == order.Exhausted {
		_ = h.publisher.PublishOrderChanged(ctx, theOrder)
	}

	return nil
}
