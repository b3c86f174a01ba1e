package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// defaultSweepSchedule runs the sweep every five seconds. Expired offers are
// already unacceptable the instant their deadline passes; the sweep only
// settles their stored state, so a few seconds of lag is fine.
const defaultSweepSchedule = "*/5 * * * * *"

// OfferSweepJob periodically expires lapsed offers and redistributes their
// orders. The core exposes the sweep as a command; this job is the only
// scheduler.
type OfferSweepJob struct {
	handler  commands.SweepExpiredOffersCommandHandler
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger
}

// NewOfferSweepJob creates the expiry sweep job. The schedule is a six-field
// cron expression (seconds first); an empty schedule falls back to the
// five-second default.
func NewOfferSweepJob(
	handler commands.SweepExpiredOffersCommandHandler,
	schedule string,
	log zerolog.Logger,
) *OfferSweepJob {
	if schedule == "" {
		schedule = defaultSweepSchedule
	}

	return &OfferSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		log:      log.With().Str("component", "offer_sweep_job").Logger(),
	}
}

// Start begins the sweep schedule.
func (j *OfferSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepExpiredOffersCommand()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.log.Error().Err(err).Msg("offer sweep failed")
			return
		}

		if result.ExpiredOffers > 0 {
			j.log.Info().
				Int("expired_offers", result.ExpiredOffers).
				Int("redistributed_orders", result.RedistributedOrders).
				Int("exhausted_orders", result.ExhaustedOrders).
				Msg("offer sweep completed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("offer sweep job started")
	return nil
}

// Stop stops the sweep job.
func (j *OfferSweepJob) Stop() {
	j.cron.Stop()
	j.log.Info().Msg("offer sweep job stopped")
}
