// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for offer dispatch.
//
// # Available Jobs
//
// 1. OfferSweepJob - Expires lapsed offers, applies expiry penalties, and
// redistributes the owning orders to the next candidates. The schedule comes
// from configuration and defaults to every five seconds.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, sweepSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep is idempotent: offers resolved by a concurrent accept or reject
// between selection and expiry are skipped, so a failed run can simply be
// retried on the next tick. Sweep failures are logged, never fatal.
package jobs
