// Package jobs provides scheduled background tasks for the order engine.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field, so schedules
// have six fields:
//
//	"*/10 * * * * *"   every ten seconds
//	"0 * * * * *"      once a minute
//
// # Available Jobs
//
// DispatchJob assigns the oldest PREPARING order that has no delivery
// partner to the longest-registered available partner. It goes through the
// same command as the HTTP dispatch endpoint, so partner claims stay
// serialized by the database.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, cfg.DispatchSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// "No order awaiting dispatch" and "no available partner" are normal and
// logged at debug level. Anything else is logged as an error; the next tick
// retries.
package jobs
