package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	courierID := kernel.NewUUID()
	theOffer := testPendingOffer(t, theOrder.ID(), courierID, time.Now().UTC())
	cmd, err := commands.NewAcceptOfferCommand(theOffer.ID(), courierID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	offerRepo.On("Get", ctx, theOffer.ID()).Return(theOffer, nil).Once()
	orderRepo.On("GetForUpdate", ctx, theOrder.ID()).Return(theOrder, nil).Once()
	offerRepo.On("Update", ctx, theOffer).Return(nil).Once()
	orderRepo.On("Update", ctx, theOrder).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderChanged", ctx, theOrder).Return(nil).Once()

	handler := commands.NewAcceptOfferCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, offer.Accepted, theOffer.Status())
	assert.Equal(t, order.Accepted, theOrder.Status())
	require.NotNil(t, theOrder.Courier())
	assert.True(t, courierID.IsEqual(*theOrder.Courier()))
	assert.NotNil(t, theOrder.AcceptedAt())

	offerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_ExpiredOffer(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	courierID := kernel.NewUUID()
	// Window lapsed a minute ago; the sweep has not run yet.
	theOffer := testPendingOffer(t, theOrder.ID(), courierID, time.Now().UTC().Add(-2*time.Minute))
	cmd, err := commands.NewAcceptOfferCommand(theOffer.ID(), courierID)
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	offerRepo.On("Get", ctx, theOffer.ID()).Return(theOffer, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("OrderRepository").Return(new(MockOrderRepository))
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewAcceptOfferCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, offer.ErrAlreadyResolved)
	assert.Equal(t, offer.Pending, theOffer.Status())
	offerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderChanged", mock.Anything, mock.Anything)
}

func TestAcceptOfferCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	theOffer := testPendingOffer(t, theOrder.ID(), kernel.NewUUID(), time.Now().UTC())
	cmd, err := commands.NewAcceptOfferCommand(theOffer.ID(), kernel.NewUUID())
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	offerRepo.On("Get", ctx, theOffer.ID()).Return(theOffer, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("OrderRepository").Return(new(MockOrderRepository))
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOfferCommandHandler(factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, offer.ErrWrongCourier)
	assert.Equal(t, offer.Pending, theOffer.Status())
}

func TestAcceptOfferCommandHandler_Handle_OfferNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewAcceptOfferCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	offerRepo.On("Get", ctx, cmd.OfferID()).Return(nil, errs.ErrObjectNotFound).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("OrderRepository").Return(new(MockOrderRepository))
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOfferCommandHandler(factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOfferCommandHandler_Handle_RaceLostOnConditionalUpdate(t *testing.T) {
	ctx := t.Context()

	theOrder := testPendingOrder(t)
	courierID := kernel.NewUUID()
	theOffer := testPendingOffer(t, theOrder.ID(), courierID, time.Now().UTC())
	cmd, err := commands.NewAcceptOfferCommand(theOffer.ID(), courierID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	offerRepo.On("Get", ctx, theOffer.ID()).Return(theOffer, nil).Once()
	orderRepo.On("GetForUpdate", ctx, theOrder.ID()).Return(theOrder, nil).Once()
	// The stored row is no longer Pending: a concurrent resolution won.
	offerRepo.On("Update", ctx, theOffer).Return(offer.ErrAlreadyResolved).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOfferCommandHandler(factory, new(MockOrderEventPublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, offer.ErrAlreadyResolved)
	assert.Equal(t, order.Pending, theOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewAcceptOfferCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		offerID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		cmd, err := commands.NewAcceptOfferCommand(offerID, courierID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, offerID, cmd.OfferID())
		assert.Equal(t, courierID, cmd.CourierID())
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		_, err := commands.NewAcceptOfferCommand(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewAcceptOfferCommand(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AcceptOfferCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAcceptOfferCommandIsNotConstructed)
	})
}
