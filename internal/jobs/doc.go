// Package jobs runs background maintenance next to the HTTP server.
//
//   - OrphanSweeper drains the reconcile stream and deletes identities that a
//     failed sign-up left without a profile.
//   - TokenCleanupTask purges expired refresh tokens.
//
// Both run inside a Periodic, which owns the ticker and the start/stop
// lifecycle:
//
//	sweeper := jobs.NewPeriodic(jobs.PeriodicConfig{
//	    Name:     "orphan_sweeper",
//	    Task:     jobs.NewOrphanSweeper(reader, provider, profiles, 100, log).Sweep,
//	    Interval: 5 * time.Minute,
//	    Logger:   log,
//	})
//	sweeper.Start()
//	defer sweeper.Stop()
//
// A failed run is logged and retried on the next tick.
package jobs
