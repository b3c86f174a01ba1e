package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.Pending, order.Accepted, order.PickedUp,
		order.Delivered, order.Exhausted, order.Cancelled,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Accepted", order.Accepted.String())
	assert.Equal(t, "PickedUp", order.PickedUp.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Exhausted", order.Exhausted.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.Delivered.IsFinal())
	assert.True(t, order.Cancelled.IsFinal())
	assert.False(t, order.Pending.IsFinal())
	assert.False(t, order.Accepted.IsFinal())
	assert.False(t, order.PickedUp.IsFinal())
	assert.False(t, order.Exhausted.IsFinal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("happy path walks the delivery chain", func(t *testing.T) {
		accepted, err := order.Pending.Accept()
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, accepted)

		pickedUp, err := accepted.PickUp()
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, pickedUp)

		delivered, err := pickedUp.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, delivered)
	})

	t.Run("exhaust and redispatch cycle", func(t *testing.T) {
		exhausted, err := order.Pending.Exhaust()
		require.NoError(t, err)
		assert.Equal(t, order.Exhausted, exhausted)

		pending, err := exhausted.Redispatch()
		require.NoError(t, err)
		assert.Equal(t, order.Pending, pending)
	})

	t.Run("cancel from pending and exhausted only", func(t *testing.T) {
		cancelled, err := order.Pending.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, cancelled)

		cancelled, err = order.Exhausted.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, cancelled)

		for _, s := range []order.Status{order.Accepted, order.PickedUp, order.Delivered, order.Cancelled} {
			_, err = s.Cancel()
			require.Error(t, err, s.String())
		}
	})

	t.Run("invalid transitions refuse", func(t *testing.T) {
		_, err := order.Accepted.Accept()
		require.Error(t, err)

		_, err = order.Exhausted.Accept()
		require.Error(t, err)

		_, err = order.Pending.PickUp()
		require.Error(t, err)

		_, err = order.Accepted.Deliver()
		require.Error(t, err)

		_, err = order.Accepted.Exhaust()
		require.Error(t, err)

		_, err = order.Pending.Redispatch()
		require.Error(t, err)
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	assigned := []order.Status{order.Accepted, order.PickedUp, order.Delivered}
	unassigned := []order.Status{order.Pending, order.Exhausted, order.Cancelled}

	for _, s := range assigned {
		require.NoError(t, s.ValidateCanHaveCourier(true), s.String())
		require.Error(t, s.ValidateCanHaveCourier(false), s.String())
	}

	for _, s := range unassigned {
		require.NoError(t, s.ValidateCanHaveCourier(false), s.String())
		require.Error(t, s.ValidateCanHaveCourier(true), s.String())
	}
}
