package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/config"
	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/labels"
	"github.com/CodexForgeBR/triage-loop/internal/planner"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

type fakeClient struct {
	items    []githost.Item
	listErr  error
	quota    githost.RateQuota
	quotaErr error
}

func (f *fakeClient) ListOpenItems(_ context.Context, _ string) ([]githost.Item, error) {
	return f.items, f.listErr
}

func (f *fakeClient) RateQuota(_ context.Context) (githost.RateQuota, error) {
	return f.quota, f.quotaErr
}

type recordingPlanner struct {
	plan *planner.Plan
	err  error

	gotState classifier.RepoState
	gotRes   resources.ResourceState
	gotWork  workload.PrioritizedWorkload
	calls    int
}

func (p *recordingPlanner) Plan(_ context.Context, state classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) (*planner.Plan, error) {
	p.calls++
	p.gotState = state
	p.gotRes = res
	p.gotWork = w
	return p.plan, p.err
}

func testItems() []githost.Item {
	return []githost.Item{
		{Number: 1, Kind: githost.KindIssue},
		{Number: 10, Kind: githost.KindPR, Author: "copilot",
			Labels: []string{labels.StatePrefix + string(labels.StateReadyToMerge)}},
		{Number: 11, Kind: githost.KindPR, Author: "copilot"},
	}
}

func testOrchestrator(client githost.Client, p planner.Planner) *Orchestrator {
	return &Orchestrator{
		Client:  client,
		Planner: p,
		Cfg:     config.NewDefaultConfig(),
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestRunCycleProducesFullReport(t *testing.T) {
	client := &fakeClient{
		items: testItems(),
		quota: githost.RateQuota{Remaining: 4000, Limit: 5000},
	}
	p := &recordingPlanner{plan: &planner.Plan{Strategy: "test"}}

	report := testOrchestrator(client, p).RunCycle(context.Background(), config.Target{Repo: "acme/widgets"})

	require.NoError(t, report.Err)
	assert.Equal(t, "acme/widgets", report.Repo)
	assert.Equal(t, 1, report.State.OpenIssuesTotal)
	assert.Equal(t, 2, report.State.OpenPRsTotal)
	assert.Equal(t, 1, report.State.PRsReadyToMerge)
	assert.Equal(t, 3200, report.Resources.SafeBudget)
	assert.Equal(t, "test", report.Plan.Strategy)
	assert.Greater(t, report.HealthScore, 0.0)

	// The planner saw the same snapshots the report carries.
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, report.State, p.gotState)
	assert.Equal(t, report.Resources, p.gotRes)
	assert.Equal(t, report.Workload, p.gotWork)
}

func TestRunCycleListFailureIsData(t *testing.T) {
	client := &fakeClient{listErr: errors.New("gh exploded")}
	p := &recordingPlanner{plan: &planner.Plan{}}

	report := testOrchestrator(client, p).RunCycle(context.Background(), config.Target{Repo: "acme/widgets"})

	require.Error(t, report.Err)
	assert.Contains(t, report.Err.Error(), "gh exploded")
	assert.Equal(t, 0, p.calls)
	assert.Nil(t, report.Plan)
}

func TestRunCycleQuotaFailureDegrades(t *testing.T) {
	client := &fakeClient{items: testItems(), quotaErr: errors.New("probe failed")}
	p := &recordingPlanner{plan: &planner.Plan{}}

	report := testOrchestrator(client, p).RunCycle(context.Background(), config.Target{Repo: "acme/widgets"})

	require.NoError(t, report.Err)
	assert.Equal(t, 500, report.Resources.APIRemaining)
	assert.Equal(t, 10, report.Resources.EstimatedAPIBudget)
	require.NotEmpty(t, report.Resources.Warnings)
	assert.Contains(t, report.Resources.Warnings[0], "rate limit")
}

func TestRunCycleTargetOverrides(t *testing.T) {
	client := &fakeClient{
		items: testItems(),
		quota: githost.RateQuota{Remaining: 4000, Limit: 5000},
	}
	p := &recordingPlanner{plan: &planner.Plan{}}

	target := config.Target{Repo: "acme/widgets", MaxConcurrent: 3}
	report := testOrchestrator(client, p).RunCycle(context.Background(), target)

	require.NoError(t, report.Err)
	assert.Equal(t, 3, report.Resources.MaxConcurrent)
}

func TestRunAllContinuesPastFailure(t *testing.T) {
	p := &recordingPlanner{plan: &planner.Plan{}}
	o := testOrchestrator(&fakeClient{listErr: errors.New("down")}, p)

	run := o.RunAll(context.Background(), []config.Target{
		{Repo: "acme/one"}, {Repo: "acme/two"},
	})

	require.Len(t, run.Cycles, 2)
	assert.Equal(t, 2, run.Failed())
	assert.Equal(t, 0, run.Succeeded())
	assert.False(t, run.Interrupted)
}

func TestRunAllStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &recordingPlanner{plan: &planner.Plan{}}
	o := testOrchestrator(&fakeClient{}, p)

	run := o.RunAll(ctx, []config.Target{{Repo: "acme/one"}})

	assert.Empty(t, run.Cycles)
	assert.True(t, run.Interrupted)
}
