package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func testGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func testPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	pricing, err := services.NewPricingService(services.DefaultRates())
	require.NoError(t, err)
	quote, err := pricing.Quote(10.0)
	require.NoError(t, err)

	ord, err := order.NewOrder(kernel.NewUUID(),
		"Amir Temur Avenue 1", "Navoi Street 30",
		testGeoPoint(t, 41.311081, 69.240562), testGeoPoint(t, 41.326417, 69.228350),
		10.0, quote, time.Now().UTC())
	require.NoError(t, err)

	return ord
}

func testDispatchableCourier(t *testing.T, name string, priorityScore int) *courier.Courier {
	t.Helper()

	location := testGeoPoint(t, 41.32, 69.25)
	reportedAt := time.Now().UTC()

	c, err := courier.RestoreCourier(kernel.NewUUID(), name, true, &location, &reportedAt, priorityScore, 0)
	require.NoError(t, err)

	return c
}

func testPendingOffer(t *testing.T, orderID, courierID kernel.UUID, offeredAt time.Time) *offer.Offer {
	t.Helper()

	off, err := offer.NewOffer(kernel.NewUUID(), orderID, courierID, 2.5, offeredAt, 60*time.Second)
	require.NoError(t, err)

	return off
}
