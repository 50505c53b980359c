package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
)

func newTestService(t *testing.T) (*Service, *project.FixedClock) {
	t.Helper()
	root := t.TempDir()
	layout := store.NewLayout(root)
	require.NoError(t, layout.EnsureDirs())

	cfg, err := project.Load(root)
	require.NoError(t, err)

	clock := project.NewFixedClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	ctx := &project.Context{Layout: layout, Config: cfg, Clock: clock}
	return New(ctx, "tester"), clock
}

func TestStartSuspendResume(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)
	require.Equal(t, model.SessionActive, session.Status)

	_, err = svc.Suspend(session.ID)
	require.NoError(t, err)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionSuspended, got.Status)

	_, err = svc.Resume(session.ID)
	require.NoError(t, err)
	got, err = svc.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionActive, got.Status)
}

func TestStartRejectsDoubleFocusClaim(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Start(StartInput{Scope: "impl", Focus: "T001"})
	require.NoError(t, err)

	_, err = svc.Start(StartInput{Scope: "impl", Focus: "T001"})
	require.Error(t, err)
}

func TestSetFocusRejectsConflict(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)
	b, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)

	_, err = svc.SetFocus(a.ID, "T001")
	require.NoError(t, err)

	_, err = svc.SetFocus(b.ID, "T001")
	require.Error(t, err)

	_, err = svc.ClearFocus(a.ID)
	require.NoError(t, err)

	_, err = svc.SetFocus(b.ID, "T001")
	require.NoError(t, err)
}

func TestEndComputesHandoffFromTouchedTasks(t *testing.T) {
	svc, clock := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)

	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T001", nil, nil))
	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T002", nil, nil))
	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.complete", "tester", "T002", nil, nil))

	clock.Advance(time.Hour)
	ended, err := svc.End(session.ID, "done for now")
	require.NoError(t, err)
	require.Equal(t, model.SessionEnded, ended.Status)
	require.NotNil(t, ended.Handoff)
	require.Equal(t, []string{"T001"}, ended.Handoff.OpenTasks)
	require.Equal(t, "T001", ended.Handoff.NextRecommendedTask)
}

func TestGCClosesStaleEndedSessions(t *testing.T) {
	svc, clock := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)
	_, err = svc.End(session.ID, "")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	closed, err := svc.GC(3600)
	require.NoError(t, err)
	require.Equal(t, []string{session.ID}, closed)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionClosed, got.Status)
}

func TestRecordDecisionAndAssumption(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl"})
	require.NoError(t, err)

	updated, err := svc.RecordDecision(session.ID, "use postgres", "simplest fit", nil)
	require.NoError(t, err)
	require.Len(t, updated.Decisions, 1)

	updated, err = svc.RecordAssumption(session.ID, "load stays under 100rps", model.ConfidenceMedium)
	require.NoError(t, err)
	require.Len(t, updated.Assumptions, 1)
}

func TestHandoffSurvivesEndAndResume(t *testing.T) {
	svc, clock := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl", Focus: "T001"})
	require.NoError(t, err)

	_, err = svc.RecordDecision(session.ID, "use a shadow table", "avoids downtime", nil)
	require.NoError(t, err)

	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T001", nil, nil))

	brief, err := svc.Brief(session.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"T001"}, brief.OpenTasks)
	require.Equal(t, "T001", brief.NextRecommendedTask)

	clock.Advance(time.Hour)
	ended, err := svc.End(session.ID, "handing off to next agent")
	require.NoError(t, err)
	require.Equal(t, model.SessionEnded, ended.Status)

	handoff, err := svc.HandoffOf(session.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"T001"}, handoff.OpenTasks)
	require.Equal(t, "handing off to next agent", ended.Note)

	resumed, err := svc.Resume(session.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionActive, resumed.Status)

	history, err := svc.History(session.ID)
	require.NoError(t, err)
	var actions []string
	for _, e := range history {
		actions = append(actions, e.Action)
	}
	require.Contains(t, actions, "session.start")
	require.Contains(t, actions, "session.end")
	require.Contains(t, actions, "session.resume")
}

func TestDetectDriftFlagsOffFocusActivity(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Start(StartInput{Scope: "impl", Focus: "T001"})
	require.NoError(t, err)

	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T002", nil, nil))
	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T003", nil, nil))
	require.NoError(t, svc.audit.TaskMutation(session.ID, "task.update", "tester", "T004", nil, nil))

	entries, err := svc.audit.Read()
	require.NoError(t, err)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	report := DetectDrift(got, entries, 10)
	require.True(t, report.Drifted)
	require.Equal(t, "T001", report.FocusTaskID)
}
