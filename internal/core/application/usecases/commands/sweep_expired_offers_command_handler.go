package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// SweepResult reports what one sweep pass did, for observability.
type SweepResult struct {
	// ExpiredOffers is how many pending offers were marked Expired.
	ExpiredOffers int
	// RedistributedOrders is how many owning orders received a fresh offer.
	RedistributedOrders int
	// ExhaustedOrders is how many owning orders ran out of candidates.
	ExhaustedOrders int
}

// SweepExpiredOffersCommandHandler expires lapsed pending offers, penalizes
// the unresponsive couriers, and redistributes the owning orders.
//
// Expiry is enforced by timestamp comparison, not a live timer, so the sweep
// tolerates scheduler downtime: a lapsed offer is never acceptable regardless
// of when the sweep finally runs. The handler is idempotent; offers that a
// concurrent accept or reject resolved first are skipped without side effects.
type SweepExpiredOffersCommandHandler struct {
	uowFactory UoWFactory
	settings   DispatchSettings
	dispatcher offerDispatcher
	publisher  ports.OrderEventPublisher
}

// NewSweepExpiredOffersCommandHandler creates a handler for the expiry sweep.
func NewSweepExpiredOffersCommandHandler(
	uowFactory UoWFactory,
	settings DispatchSettings,
	publisher ports.OrderEventPublisher,
) (SweepExpiredOffersCommandHandler, error) {
	if err := settings.Validate(); err != nil {
		return SweepExpiredOffersCommandHandler{}, err
	}

	return SweepExpiredOffersCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		dispatcher: newOfferDispatcher(settings),
		publisher:  publisher,
	}, nil
}

// Handle runs one sweep pass and returns counts of what it did.
func (h SweepExpiredOffersCommandHandler) Handle(
	ctx context.Context,
	cmd SweepExpiredOffersCommand,
) (SweepResult, error) {
	var result SweepResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OfferRepository().GetAllExpiredPending(ctx, now)
	if err != nil {
		return result, err
	}

	var exhausted []*order.Order
	for _, lapsed := range expired {
		orderExhausted, sweepErr := h.sweepOne(ctx, uow, lapsed, now, &result)
		if sweepErr != nil {
			return SweepResult{}, sweepErr
		}
		if orderExhausted != nil {
			exhausted = append(exhausted, orderExhausted)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepResult{}, err
	}

	for _, exhaustedOrder := range exhausted {
		_ = h.publisher.PublishOrderChanged(ctx, exhaustedOrder)
	}

	return result, nil
}

// sweepOne expires a single offer and redistributes its order. Returns the
// order when this pass exhausted it, so the caller can report it after commit.
func (h SweepExpiredOffersCommandHandler) sweepOne(
	ctx context.Context,
	uow UoW,
	lapsed *offer.Offer,
	now time.Time,
	result *SweepResult,
) (*order.Order, error) {
	// Lock the owning order first; resolution and redistribution for one
	// order then serialize with concurrent accepts and dispatch cycles.
	theOrder, err := uow.OrderRepository().GetForUpdate(ctx, lapsed.OrderID())
	if err != nil {
		return nil, err
	}

	if err = lapsed.Expire(now); err != nil {
		if errors.Is(err, offer.ErrAlreadyResolved) {
			return nil, nil
		}
		return nil, err
	}

	if err = uow.OfferRepository().Update(ctx, lapsed); err != nil {
		if errors.Is(err, offer.ErrAlreadyResolved) {
			// A concurrent resolution won between the query and this write.
			return nil, nil
		}
		return nil, err
	}

	result.ExpiredOffers++

	err = uow.CourierRepository().ApplyPenalty(ctx, lapsed.CourierID(), h.settings.ExpirePenalty, false)
	if err != nil {
		return nil, err
	}

	if theOrder.IsAssigned() || theOrder.Status() != order.Pending {
		return nil, nil
	}

	if err = h.dispatcher.dispatchNext(ctx, uow, theOrder, now); err != nil {
		return nil, err
	}

	if theOrder.Status() == order.Exhausted {
		result.ExhaustedOrders++
		return theOrder, nil
	}

	result.RedistributedOrders++
	return nil, nil
}
