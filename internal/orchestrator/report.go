package orchestrator

import (
	"time"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/planner"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

// CycleReport is everything one repository cycle observed and decided.
// Failures are data: Err is set and the remaining fields hold whatever was
// computed before the failure.
type CycleReport struct {
	Repo      string
	StartedAt time.Time
	Duration  time.Duration

	State       classifier.RepoState
	Resources   resources.ResourceState
	Workload    workload.PrioritizedWorkload
	Plan        *planner.Plan
	HealthScore float64

	Err error
}

// RunReport aggregates the cycle reports of one multi-repo run.
type RunReport struct {
	StartedAt   time.Time
	Duration    time.Duration
	Cycles      []*CycleReport
	Interrupted bool
}

// Failed counts cycles that ended in error.
func (r *RunReport) Failed() int {
	n := 0
	for _, c := range r.Cycles {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded counts cycles that completed with a plan.
func (r *RunReport) Succeeded() int {
	return len(r.Cycles) - r.Failed()
}
