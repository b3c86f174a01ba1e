package jobs

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// A schedule that never fires during a test run.
const idleSchedule = "0 0 0 1 1 *"

type stubUoWFactory struct{}

func (stubUoWFactory) Create() commands.UoW { return stubUoW{} }

type stubUoW struct{}

func (stubUoW) Begin(context.Context) error                { return errors.New("no database") }
func (stubUoW) Commit(context.Context) error               { return nil }
func (stubUoW) Rollback(context.Context) error             { return nil }
func (stubUoW) OrderRepository() ports.OrderRepository     { return nil }
func (stubUoW) OfferRepository() ports.OfferRepository     { return nil }
func (stubUoW) CourierRepository() ports.CourierRepository { return nil }

type stubPublisher struct{}

func (stubPublisher) PublishOrderChanged(context.Context, *order.Order) error { return nil }

func newTestSweepHandler(t *testing.T) commands.SweepExpiredOffersCommandHandler {
	t.Helper()

	handler, err := commands.NewSweepExpiredOffersCommandHandler(
		stubUoWFactory{}, commands.DefaultDispatchSettings(), stubPublisher{})
	require.NoError(t, err)

	return handler
}

func TestOfferSweepJobStartsWithConfiguredSchedule(t *testing.T) {
	job := NewOfferSweepJob(newTestSweepHandler(t), idleSchedule, zerolog.Nop())

	require.NoError(t, job.Start())
	job.Stop()
}

func TestOfferSweepJobEmptyScheduleFallsBackToDefault(t *testing.T) {
	job := NewOfferSweepJob(newTestSweepHandler(t), "", zerolog.Nop())
	require.Equal(t, defaultSweepSchedule, job.schedule)

	require.NoError(t, job.Start())
	job.Stop()
}

func TestOfferSweepJobRejectsInvalidSchedule(t *testing.T) {
	job := NewOfferSweepJob(newTestSweepHandler(t), "not a schedule", zerolog.Nop())

	require.Error(t, job.Start())
}

func TestJobManagerStartsAndStopsAll(t *testing.T) {
	manager := NewJobManager(newTestSweepHandler(t), idleSchedule, zerolog.Nop())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
