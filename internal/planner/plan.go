// Package planner produces the execution plan for one triage cycle.
//
// Two strategies exist behind the same interface: a strategic planner that
// delegates to an external reasoning model, and a deterministic fallback
// whose output is within budget by construction. The composite planner used
// in production tries the strategic path first and degrades to the fallback
// on any failure, so callers never see an error.
package planner

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

// Workflow names understood by the external executor.
const (
	WorkflowMergeReadyPRs  = "merge_ready_prs"
	WorkflowFlagBlockedPRs = "flag_blocked_prs"
	WorkflowReviewPRs      = "review_prs"
	WorkflowProcessIssues  = "process_issues"
	WorkflowCreateIssues   = "create_issues"
)

// Step is one bounded unit of work in a plan.
type Step struct {
	Name      string `json:"name"`
	BatchSize int    `json:"batch_size"`
	Reasoning string `json:"reasoning"`
}

// Plan is the ordered work list handed to the executor for one cycle. It is
// produced once, consumed, and discarded; nothing in it is persisted.
type Plan struct {
	Strategy          string   `json:"strategy"`
	Workflows         []Step   `json:"workflows"`
	SkipWorkflows     []string `json:"skip_workflows"`
	EstimatedAPICalls int      `json:"estimated_api_calls"`
	Warnings          []string `json:"warnings"`
}

// Planner turns the three per-cycle snapshots into a plan.
type Planner interface {
	Plan(ctx context.Context, state classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) (*Plan, error)
}

// MalformedResponseError reports a strategic response that parsed as text
// but did not satisfy the plan schema.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed planner response: %s", e.Reason)
}

// ConsumesAgentCapacity reports whether a workflow occupies a coding-agent
// slot. Only issue processing spawns new agent work; merging, flagging, and
// reviewing touch existing PRs without claiming capacity.
func ConsumesAgentCapacity(name string) bool {
	return name == WorkflowProcessIssues
}

// Validate checks a plan against the resource invariants: agent-consuming
// batch sizes must fit in the available slots and the estimated cost must fit
// in the API budget. Plans from the deterministic fallback satisfy this by
// construction; strategic plans must be checked.
func Validate(plan *Plan, res resources.ResourceState) error {
	agentBatch := 0
	for _, step := range plan.Workflows {
		if step.BatchSize < 0 {
			return fmt.Errorf("step %s has negative batch size %d", step.Name, step.BatchSize)
		}
		if ConsumesAgentCapacity(step.Name) {
			agentBatch += step.BatchSize
		}
	}

	if agentBatch > res.AvailableSlots {
		return fmt.Errorf("plan consumes %d agent slots but only %d available",
			agentBatch, res.AvailableSlots)
	}
	if plan.EstimatedAPICalls > res.EstimatedAPIBudget {
		return fmt.Errorf("plan estimates %d API calls but budget is %d",
			plan.EstimatedAPICalls, res.EstimatedAPIBudget)
	}
	return nil
}
