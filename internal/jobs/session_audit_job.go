package jobs

import (
	"context"
	"log/slog"
	"time"

	"callcenter/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultAuditSchedule runs the audit at the top of every minute.
const DefaultAuditSchedule = "0 * * * * *"

type AuditSessionsHandler interface {
	Handle(ctx context.Context, query queries.AuditSessionsQuery) (queries.AuditSessionsQueryResponse, error)
}

// SessionAuditJob periodically counts sessions per state and reports rows
// that break the session invariants.
type SessionAuditJob struct {
	handler  AuditSessionsHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionAuditJob creates the audit job. The schedule is a six-field
// cron expression; an empty one selects DefaultAuditSchedule.
func NewSessionAuditJob(handler AuditSessionsHandler, schedule string, logger *slog.Logger) *SessionAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionAuditJob{
		handler:  handler,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_audit_job"),
	}
}

// Start schedules the audit.
func (j *SessionAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session audit job started", "schedule", j.schedule)
	return nil
}

// Run performs a single audit pass.
func (j *SessionAuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.handler.Handle(ctx, queries.NewAuditSessionsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Session audit failed", "error", err)
		return
	}

	attrs := make([]any, 0, len(report.SessionsByState)*2)
	for state, count := range report.SessionsByState {
		attrs = append(attrs, state.String(), count)
	}
	j.logger.InfoContext(ctx, "Session audit", attrs...)

	if report.Breaches() > 0 {
		j.logger.WarnContext(ctx, "Session invariants breached",
			"completed_without_order", report.CompletedWithoutOrder,
			"orders_on_open_sessions", report.OrdersOnOpenSessions,
			"missing_member", report.MissingMember,
			"unexpected_member", report.UnexpectedMember,
		)
	}
}

// Stop stops the schedule and waits for a running audit to finish.
func (j *SessionAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session audit job stopped")
}
