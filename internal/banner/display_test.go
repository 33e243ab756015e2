package banner

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/orchestrator"
	"github.com/CodexForgeBR/triage-loop/internal/planner"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
)

// captureStdout captures stdout output during function execution
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-outC
}

func TestPrintStartupBanner(t *testing.T) {
	out := captureStdout(t, func() {
		PrintStartupBanner("claude", "sonnet", []string{"acme/widgets", "acme/gadgets"})
	})

	assert.Contains(t, out, "triage-loop")
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "sonnet")
	assert.Contains(t, out, "acme/widgets, acme/gadgets")
}

func TestPrintCycleSummary(t *testing.T) {
	report := &orchestrator.CycleReport{
		Repo: "acme/widgets",
		State: classifier.RepoState{
			OpenIssuesTotal:       12,
			OpenIssuesUnprocessed: 4,
			OpenPRsTotal:          6,
			PRsReadyToMerge:       2,
			PRsBlocked:            1,
			PRsPendingReview:      3,
		},
		Resources: resources.ResourceState{
			AvailableSlots:     7,
			MaxConcurrent:      10,
			EstimatedAPIBudget: 160,
		},
		HealthScore: 0.75,
		Plan: &planner.Plan{
			Strategy: "merge first",
			Workflows: []planner.Step{
				{Name: planner.WorkflowMergeReadyPRs, BatchSize: 2, Reasoning: "free capacity"},
			},
			SkipWorkflows: []string{planner.WorkflowCreateIssues},
			Warnings:      []string{"low API quota"},
		},
	}

	out := captureStdout(t, func() { PrintCycleSummary(report) })

	assert.Contains(t, out, "acme/widgets")
	assert.Contains(t, out, "12 open, 4 unprocessed")
	assert.Contains(t, out, "2 ready, 1 blocked, 3 pending review")
	assert.Contains(t, out, "7/10 agent slots free")
	assert.Contains(t, out, "0.75")
	assert.Contains(t, out, "merge_ready_prs (batch 2)")
	assert.Contains(t, out, "create_issues")
	assert.Contains(t, out, "low API quota")
}

func TestPrintCycleSummaryFailure(t *testing.T) {
	report := &orchestrator.CycleReport{
		Repo: "acme/widgets",
		Err:  errors.New("list open items: gh exploded"),
	}

	out := captureStdout(t, func() { PrintCycleSummary(report) })

	assert.Contains(t, out, "cycle failed")
	assert.Contains(t, out, "gh exploded")
}

func TestPrintRunSummary(t *testing.T) {
	run := &orchestrator.RunReport{
		Duration: 83 * time.Second,
		Cycles: []*orchestrator.CycleReport{
			{Repo: "acme/one"},
			{Repo: "acme/two", Err: errors.New("down")},
		},
	}

	out := captureStdout(t, func() { PrintRunSummary(run) })

	assert.Contains(t, out, "1 ok, 1 failed")
	assert.Contains(t, out, "1m 23s (83s)")
}
