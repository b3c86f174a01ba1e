package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// The flow is: geocode both addresses, route between them, price the routed
// distance, persist the Pending order, and immediately run one dispatch cycle
// so the best candidate receives the first offer. Geo or pricing failures
// abort before the transaction opens, so a failed creation leaves no state
// behind.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	geoClient  ports.GeoClient
	pricing    services.PricingService
	dispatcher offerDispatcher
	publisher  ports.OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	geoClient ports.GeoClient,
	pricing services.PricingService,
	settings DispatchSettings,
	publisher ports.OrderEventPublisher,
) (CreateOrderCommandHandler, error) {
	if err := settings.Validate(); err != nil {
		return CreateOrderCommandHandler{}, err
	}

	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geoClient:  geoClient,
		pricing:    pricing,
		dispatcher: newOfferDispatcher(settings),
		publisher:  publisher,
	}, nil
}

// Handle processes the order creation command.
//
// Returns geo gateway errors (ports.ErrAddressNotFound, ports.ErrNoRouteFound,
// ports.ErrGeoUnavailable) and pricing errors unchanged so the transport layer
// can map them. On success the order is persisted Pending and either carries a
// fresh offer or, with no candidates at all, is already Exhausted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	origin, err := h.geoClient.Geocode(ctx, cmd.OriginAddress())
	if err != nil {
		return err
	}

	destination, err := h.geoClient.Geocode(ctx, cmd.DestinationAddress())
	if err != nil {
		return err
	}

	route, err := h.geoClient.Route(ctx, origin, destination)
	if err != nil {
		return err
	}

	pricing, err := h.pricing.Quote(route.DistanceKm)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(cmd.OrderID(),
		cmd.OriginAddress(), cmd.DestinationAddress(),
		origin, destination, route.DistanceKm, pricing, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = h.dispatcher.dispatchNext(ctx, uow, newOrder, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best effort: the adapter logs failed publishes, the order stands.
	_ = h.publisher.PublishOrderChanged(ctx, newOrder)

	return nil
}
