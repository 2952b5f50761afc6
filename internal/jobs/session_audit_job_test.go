package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"callcenter/internal/core/application/usecases/queries"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditSessionsHandler struct{ mock.Mock }

func (m *MockAuditSessionsHandler) Handle(ctx context.Context, query queries.AuditSessionsQuery) (queries.AuditSessionsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.AuditSessionsQueryResponse), args.Error(1)
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSessionAuditJob_Run_Clean(t *testing.T) {
	var buf bytes.Buffer
	handler := new(MockAuditSessionsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(queries.AuditSessionsQueryResponse{
		SessionsByState: map[session.State]int64{session.AskMember: 2, session.Completed: 5},
	}, nil).Once()

	jobs.NewSessionAuditJob(handler, "", newLogger(&buf)).Run()

	out := buf.String()
	assert.Contains(t, out, "Session audit")
	assert.Contains(t, out, "ASK_MEMBER=2")
	assert.Contains(t, out, "COMPLETED=5")
	assert.NotContains(t, out, "level=WARN")
	handler.AssertExpectations(t)
}

func TestSessionAuditJob_Run_WarnsOnBreaches(t *testing.T) {
	var buf bytes.Buffer
	handler := new(MockAuditSessionsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(queries.AuditSessionsQueryResponse{
		CompletedWithoutOrder: 1,
		MissingMember:         2,
	}, nil).Once()

	jobs.NewSessionAuditJob(handler, "", newLogger(&buf)).Run()

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "completed_without_order=1")
	assert.Contains(t, out, "missing_member=2")
}

func TestSessionAuditJob_Run_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	handler := new(MockAuditSessionsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.AuditSessionsQueryResponse{}, errors.New("connection refused")).Once()

	jobs.NewSessionAuditJob(handler, "", newLogger(&buf)).Run()

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestSessionAuditJob_NilLoggerUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(newLogger(&buf))
	t.Cleanup(func() { slog.SetDefault(previous) })

	handler := new(MockAuditSessionsHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(queries.AuditSessionsQueryResponse{}, nil).Once()

	require.NotPanics(t, func() {
		jobs.NewSessionAuditJob(handler, "", nil).Run()
	})
	assert.Contains(t, buf.String(), "component=session_audit_job")

	idle := new(MockAuditSessionsHandler)
	idle.On("Handle", mock.Anything, mock.Anything).Return(queries.AuditSessionsQueryResponse{}, nil).Maybe()
	manager := jobs.NewJobManager(idle, "", nil)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
	assert.Contains(t, buf.String(), "Scheduled jobs started")
}

func TestSessionAuditJob_StartRejectsBadSchedule(t *testing.T) {
	var buf bytes.Buffer
	job := jobs.NewSessionAuditJob(new(MockAuditSessionsHandler), "not a schedule", newLogger(&buf))

	require.Error(t, job.Start())
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Start() error {
	*j.events = append(*j.events, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartStopOrder(t *testing.T) {
	var events []string
	manager := jobs.NewJobManagerWith(slog.Default(),
		fakeJob{name: "a", events: &events},
		fakeJob{name: "b", events: &events},
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestJobManager_FailedStartStopsStartedJobs(t *testing.T) {
	var events []string
	manager := jobs.NewJobManagerWith(slog.Default(),
		fakeJob{name: "a", events: &events},
		fakeJob{name: "b", startErr: errors.New("boom"), events: &events},
		fakeJob{name: "c", events: &events},
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, events)
}

func TestJobManager_StartsAuditJob(t *testing.T) {
	var buf bytes.Buffer
	manager := jobs.NewJobManager(new(MockAuditSessionsHandler), "0 0 0 1 1 *", newLogger(&buf))

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Contains(t, buf.String(), "Session audit job started")
	assert.Contains(t, buf.String(), "Session audit job stopped")
}
