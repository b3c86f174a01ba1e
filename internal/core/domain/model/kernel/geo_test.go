package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates valid point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(41.311081, 69.240562)

		require.NoError(t, err)
		assert.InDelta(t, 41.311081, point.Latitude(), 1e-9)
		assert.InDelta(t, 69.240562, point.Longitude(), 1e-9)
		require.NoError(t, point.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90, 180)
		require.NoError(t, err)

		_, err = kernel.NewGeoPoint(-90, -180)
		require.NoError(t, err)
	})

	t.Run("rejects out of range latitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.5, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects out of range longitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects non-finite components", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(math.NaN(), 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewGeoPoint(0, math.Inf(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	p1, _ := kernel.NewGeoPoint(41.3, 69.2)
	p2, _ := kernel.NewGeoPoint(41.3, 69.2)
	p3, _ := kernel.NewGeoPoint(41.4, 69.2)

	equal, err := p1.IsEqual(p2)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = p1.IsEqual(p3)
	require.NoError(t, err)
	assert.False(t, equal)

	var zero kernel.GeoPoint
	_, err = p1.IsEqual(zero)
	require.Error(t, err)
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(41.311081, 69.240562)

		distance, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 1e-9)
	})

	t.Run("computes known distance", func(t *testing.T) {
		// Tashkent center to Chirchiq, roughly 30 km apart.
		tashkent, _ := kernel.NewGeoPoint(41.311081, 69.240562)
		chirchiq, _ := kernel.NewGeoPoint(41.468889, 69.582222)

		distance, err := tashkent.DistanceKm(chirchiq)

		require.NoError(t, err)
		assert.InDelta(t, 33.5, distance, 1.0)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, 69.0)
		b, _ := kernel.NewGeoPoint(41.0, 70.0)

		d1, err := a.DistanceKm(b)
		require.NoError(t, err)
		d2, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("fails for unconstructed point", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(40.0, 69.0)
		var zero kernel.GeoPoint

		_, err := point.DistanceKm(zero)

		require.Error(t, err)
	})
}

func TestGeoPoint_String(t *testing.T) {
	point, _ := kernel.NewGeoPoint(41.311081, 69.240562)
	assert.Equal(t, "GeoPoint(41.311081,69.240562)", point.String())
}
