package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrOrderNotDispatchable is returned when dispatch is requested for an order
// that already has a courier or reached a final status.
var ErrOrderNotDispatchable = errors.New("order cannot be dispatched in its current status")

// DispatchOrderCommandHandler runs one dispatch cycle for a single order on
// operator demand. An Exhausted order is first returned to the Pending pool,
// which lets the operator retry after the courier situation changed; a Pending
// order simply gets a dispatch cycle (no-op when an offer is already out).
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher offerDispatcher
	publisher  ports.OrderEventPublisher
}

// NewDispatchOrderCommandHandler creates a handler for operator-triggered dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	settings DispatchSettings,
	publisher ports.OrderEventPublisher,
) (DispatchOrderCommandHandler, error) {
	if err := settings.Validate(); err != nil {
		return DispatchOrderCommandHandler{}, err
	}

	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: newOfferDispatcher(settings),
		publisher:  publisher,
	}, nil
}

// Handle processes the dispatch request.
//
// Returns errs.ErrObjectNotFound for an unknown order and
// ErrOrderNotDispatchable for assigned or final orders.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	theOrder, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch theOrder.Status() {
	case order.Pending:
	case order.Exhausted:
		if err = theOrder.Redispatch(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, theOrder); err != nil {
			return err
		}
	default:
		return ErrOrderNotDispatchable
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
