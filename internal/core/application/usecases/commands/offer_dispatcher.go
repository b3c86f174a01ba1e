package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// offerDispatcher issues the next offer for an order. It is the shared core of
// every command that can trigger redistribution: order creation, rejection,
// the expiry sweep, and operator re-dispatch.
//
// All work happens inside the caller's transaction, and the caller is expected
// to hold the order's row lock (GetForUpdate) so concurrent dispatch cycles
// for the same order serialize instead of both issuing an offer. The partial
// unique index on pending offers backstops that guarantee at the storage level.
type offerDispatcher struct {
	settings DispatchSettings
	ranker   services.CandidateRanker
}

func newOfferDispatcher(settings DispatchSettings) offerDispatcher {
	return offerDispatcher{
		settings: settings,
		ranker:   services.NewCandidateRanker(),
	}
}

// dispatchNext offers the order to the best remaining candidate.
//
// No-op when the order is already assigned, not Pending, or already has a
// Pending offer. When no eligible candidate remains the order is marked
// Exhausted and updated; the caller observes that through the aggregate's
// status and reports it. Couriers that were ever offered this order are never
// offered it again.
func (d offerDispatcher) dispatchNext(ctx context.Context, uow UoW, ord *order.Order, now time.Time) error {
	if ord.IsAssigned() || ord.Status() != order.Pending {
		return nil
	}

	offerRepo := uow.OfferRepository()

	hasPending, err := offerRepo.HasPendingByOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	if hasPending {
		return nil
	}

	candidate, err := d.nextCandidate(ctx, uow, ord)
	if err != nil {
		return err
	}

	if candidate == nil {
		if err = ord.Exhaust(); err != nil {
			return err
		}
		return uow.OrderRepository().Update(ctx, ord)
	}

	distanceKm, err := candidate.DistanceToKm(ord.Origin())
	if err != nil {
		return err
	}

	newOffer, err := offer.NewOffer(kernel.NewUUID(), ord.ID(), candidate.ID(),
		distanceKm, now, d.settings.OfferWindow)
	if err != nil {
		return err
	}

	return offerRepo.Add(ctx, newOffer)
}

// nextCandidate returns the best-ranked dispatchable courier not yet offered
// this order, or nil when the pool is exhausted.
func (d offerDispatcher) nextCandidate(ctx context.Context, uow UoW, ord *order.Order) (*courier.Courier, error) {
	candidates, err := uow.CourierRepository().GetAllDispatchable(ctx)
	if err != nil {
		return nil, err
	}

	offeredIDs, err := uow.OfferRepository().GetOfferedCourierIDs(ctx, ord.ID())
	if err != nil {
		return nil, err
	}

	offered := make(map[kernel.UUID]struct{}, len(offeredIDs))
	for _, id := range offeredIDs {
		offered[id] = struct{}{}
	}

	pool := make([]*courier.Courier, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := offered[c.ID()]; ok {
			continue
		}
		pool = append(pool, c)
	}

	ranked, err := d.ranker.Rank(ord.Origin(), pool)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil //nolint:nilnil // pool exhausted and no error
	}

	return ranked[0], nil
}
