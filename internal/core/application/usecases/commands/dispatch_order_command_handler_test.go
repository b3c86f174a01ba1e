package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDispatchOrderHandler(t *testing.T, factory commands.UoWFactory, publisher *MockOrderEventPublisher) commands.DispatchOrderCommandHandler {
	t.Helper()

	handler, err := commands.NewDispatchOrderCommandHandler(
		factory, commands.DefaultDispatchSettings(), publisher)
	require.NoError(t, err)

	return handler
}

func exhaustedOrder(t *testing.T) *order.Order {
	t.Helper()

	ord := testPendingOrder(t)
	require.NoError(t, ord.Exhaust())
	return ord
}

func TestDispatchOrderCommandHandler_Handle_RedispatchesExhaustedOrder(t *testing.T) {
	ctx := t.Context()

	theOrder := exhaustedOrder(t)
	// A courier came online after the pool ran dry.
	fresh := testDispatchableCourier(t, "Frank", 0)
	cmd, err := commands.NewDispatchOrderCommand(theOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)
	courierRepo := new(MockCourierRepository)

	orderRepo.On("GetForUpdate", ctx, theOrder.ID()).Return(theOrder, nil).Once()
	orderRepo.On("Update", ctx, theOrder).Return(nil).Once()
	offerRepo.On("HasPendingByOrder", ctx, theOrder.ID()).Return(false, nil).Once()
	courierRepo.On("GetAllDispatchable", ctx).Return([]*courier.Courier{fresh}, nil).Once()
	offerRepo.On("GetOfferedCourierIDs", ctx, theOrder.ID()).Return([]kernel.UUID{}, nil).Once()

	var newOffer *offer.Offer
	offerRepo.On("Add", ctx, mock.AnythingOfType("*offer.Offer")).
		Run(func(args mock.Arguments) { newOffer = args.Get(1).(*offer.Offer) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := newDispatchOrderHandler(t, factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, theOrder.Status())
	require.NotNil(t, newOffer)
	assert.True(t, fresh.ID().IsEqual(newOffer.CourierID()))
	publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_PendingOrderWithOfferIsNoOp(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	cmd, err := commands.NewDispatchOrderCommand(theOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	orderRepo.On("GetForUpdate", ctx, theOrder.ID()).Return(theOrder, nil).Once()
	offerRepo.On("HasPendingByOrder", ctx, theOrder.ID()).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchOrderHandler(t, factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, theOrder.Status())
	offerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_AssignedOrderRefuses(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	require.NoError(t, theOrder.Accept(kernel.NewUUID(), time.Now().UTC()))
	cmd, err := commands.NewDispatchOrderCommand(theOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUpdate", ctx, theOrder.ID()).Return(theOrder, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchOrderHandler(t, factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotDispatchable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewDispatchOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUpdate", ctx, cmd.OrderID()).Return(nil, errs.ErrObjectNotFound).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchOrderHandler(t, factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewDispatchOrderCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewDispatchOrderCommand(orderID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
	})

	t.Run("rejects empty order id", func(t *testing.T) {
		_, err := commands.NewDispatchOrderCommand(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.DispatchOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrDispatchOrderCommandIsNotConstructed)
	})
}
