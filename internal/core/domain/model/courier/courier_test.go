package courier_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("creates offline courier without location", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "Alice")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, id, c.ID())
		assert.Equal(t, "Alice", c.Name())
		assert.False(t, c.IsOnline())
		assert.False(t, c.HasLocation())
		assert.False(t, c.IsDispatchable())
		assert.Zero(t, c.PriorityScore())
		assert.Zero(t, c.RejectionsToday())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "")

		require.ErrorIs(t, err, courier.ErrNameIsRequired)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, "Alice")

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c courier.Courier

		err := c.Validate()

		require.Error(t, err)
		assert.Equal(t, courier.ErrCourierIsNotConstructed, err)
	})
}

func TestRestoreCourier(t *testing.T) {
	location, _ := kernel.NewGeoPoint(41.311081, 69.240562)
	reportedAt := time.Now().UTC()

	t.Run("restores online courier with location and counters", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.RestoreCourier(id, "Bob", true, &location, &reportedAt, 15, 2)

		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
		assert.True(t, c.IsOnline())
		assert.True(t, c.IsDispatchable())
		require.NotNil(t, c.Location())
		assert.Equal(t, 15, c.PriorityScore())
		assert.Equal(t, 2, c.RejectionsToday())
	})

	t.Run("restores courier without location", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), "Bob", true, nil, nil, 0, 0)

		require.NoError(t, err)
		assert.False(t, c.HasLocation())
		assert.False(t, c.IsDispatchable())
	})

	t.Run("rejects location without timestamp", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), "Bob", true, &location, nil, 0, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative counters", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), "Bob", false, nil, nil, -1, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = courier.RestoreCourier(kernel.NewUUID(), "Bob", false, nil, nil, 0, -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCourier_Availability(t *testing.T) {
	location, _ := kernel.NewGeoPoint(41.311081, 69.240562)

	t.Run("dispatchable requires online and location", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		c.GoOnline()
		assert.False(t, c.IsDispatchable())

		require.NoError(t, c.UpdateLocation(location, time.Now().UTC()))
		assert.True(t, c.IsDispatchable())

		c.GoOffline()
		assert.False(t, c.IsDispatchable())
	})

	t.Run("update location records timestamp", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		reportedAt := time.Now().UTC()

		require.NoError(t, c.UpdateLocation(location, reportedAt))

		require.NotNil(t, c.LastLocationAt())
		assert.Equal(t, reportedAt, *c.LastLocationAt())
	})

	t.Run("update location rejects unconstructed point", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		var zero kernel.GeoPoint

		require.Error(t, c.UpdateLocation(zero, time.Now().UTC()))
		assert.False(t, c.HasLocation())
	})
}

func TestCourier_DistanceToKm(t *testing.T) {
	origin, _ := kernel.NewGeoPoint(41.311081, 69.240562)
	target, _ := kernel.NewGeoPoint(41.468889, 69.582222)

	t.Run("measures from last known location", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)
		require.NoError(t, c.UpdateLocation(origin, time.Now().UTC()))

		distance, err := c.DistanceToKm(target)

		require.NoError(t, err)
		assert.InDelta(t, 33.5, distance, 1.0)
	})

	t.Run("fails without a location", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		_, err = c.DistanceToKm(target)

		require.ErrorIs(t, err, courier.ErrLocationIsUnknown)
	})
}

func TestCourier_ApplyPenalty(t *testing.T) {
	t.Run("rejection penalty raises score and counter", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		require.NoError(t, c.ApplyPenalty(10, true))

		assert.Equal(t, 10, c.PriorityScore())
		assert.Equal(t, 1, c.RejectionsToday())
	})

	t.Run("expiry penalty raises score only", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		require.NoError(t, c.ApplyPenalty(5, false))

		assert.Equal(t, 5, c.PriorityScore())
		assert.Zero(t, c.RejectionsToday())
	})

	t.Run("penalties accumulate", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		require.NoError(t, c.ApplyPenalty(10, true))
		require.NoError(t, c.ApplyPenalty(5, false))
		require.NoError(t, c.ApplyPenalty(10, true))

		assert.Equal(t, 25, c.PriorityScore())
		assert.Equal(t, 2, c.RejectionsToday())
	})

	t.Run("rejects negative delta", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
		require.NoError(t, err)

		require.ErrorIs(t, c.ApplyPenalty(-1, false), errs.ErrValueIsInvalid)
	})
}
