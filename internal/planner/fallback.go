package planner

import (
	"context"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

const (
	// maxMergeBatch bounds merges per cycle; merging frees agent capacity
	// and costs no slots, so it always runs first when quick wins exist.
	maxMergeBatch = 5

	// maxReviewBatch and maxIssueBatch keep the conservative path from
	// claiming the whole backlog in one cycle.
	maxReviewBatch = 3
	maxIssueBatch  = 3

	// minBudgetForWork gates everything except merges. Below this budget
	// the cycle only harvests quick wins.
	minBudgetForWork = 10
)

// Fallback is the deterministic planning strategy. Every batch size is
// capped against the relevant ceiling at the point of emission, so the plan
// satisfies the resource invariants for any input.
type Fallback struct{}

// Plan emits the conservative plan. Issue creation is always skipped: it is
// the highest-discretion action and needs strategic confirmation.
func (f *Fallback) Plan(_ context.Context, _ classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) (*Plan, error) {
	plan := &Plan{
		Strategy:      "conservative fallback: quick wins first, minimal new work",
		SkipWorkflows: []string{WorkflowCreateIssues},
	}

	if n := len(w.QuickWins); n > 0 {
		plan.Workflows = append(plan.Workflows, Step{
			Name:      WorkflowMergeReadyPRs,
			BatchSize: min(n, maxMergeBatch),
			Reasoning: "merging approved PRs frees agent capacity at no slot cost",
		})
	}

	if res.EstimatedAPIBudget > minBudgetForWork {
		if n := len(w.BlockedPRs); n > 0 {
			plan.Workflows = append(plan.Workflows, Step{
				Name:      WorkflowFlagBlockedPRs,
				BatchSize: n,
				Reasoning: "flagging is cheap; surface every stuck PR to a human",
			})
		}

		if n := len(w.PendingReview); n > 0 {
			plan.Workflows = append(plan.Workflows, Step{
				Name:      WorkflowReviewPRs,
				BatchSize: min(n, maxReviewBatch),
				Reasoning: "keep reviews moving without flooding the queue",
			})
		}

		// Use at most half the free slots, leaving headroom for the next
		// cycle's uncertainty.
		if batch := min(len(w.UnprocessedIssues), res.AvailableSlots/2, maxIssueBatch); batch > 0 {
			plan.Workflows = append(plan.Workflows, Step{
				Name:      WorkflowProcessIssues,
				BatchSize: batch,
				Reasoning: "start new work with half the free capacity held back",
			})
		} else {
			plan.SkipWorkflows = append(plan.SkipWorkflows, WorkflowProcessIssues)
		}
	}

	total := 0
	for _, step := range plan.Workflows {
		total += step.BatchSize
	}
	plan.EstimatedAPICalls = min(total*resources.DefaultCostPerItem, res.EstimatedAPIBudget)

	return plan, nil
}
