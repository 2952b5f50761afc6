// Package jobs provides scheduled background tasks for the intake service.
//
// Jobs are built on github.com/robfig/cron/v3 with six-field (seconds)
// expressions.
//
// # Available Jobs
//
// SessionAuditJob reads the session store, logs how many sessions sit in
// each state and warns when stored rows break the session invariants:
// a COMPLETED session without an order, an order on an open session, or a
// member that is missing or present in the wrong state.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
