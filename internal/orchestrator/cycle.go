// Package orchestrator runs the four-stage triage cycle for each configured
// repository: classify, monitor, prioritize, plan. The produced plan is
// reported, not executed; execution belongs to external tooling.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/config"
	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/logging"
	"github.com/CodexForgeBR/triage-loop/internal/planner"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

// Orchestrator wires the cycle stages together. All stages are pure
// functions of their inputs; the only external calls are the host-platform
// reads and the strategic planning call inside Planner.
type Orchestrator struct {
	Client  githost.Client
	Planner planner.Planner
	Cfg     *config.Config

	// Now supplies cycle timestamps; nil means time.Now.
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// RunCycle runs one full cycle for a target. It never returns an error;
// failures land in the report's Err field so a multi-repo run can continue.
func (o *Orchestrator) RunCycle(ctx context.Context, target config.Target) *CycleReport {
	started := o.now()
	report := &CycleReport{Repo: target.Repo, StartedAt: started}
	defer func() { report.Duration = o.now().Sub(started) }()

	maxRetries := o.Cfg.MergeMaxRetries
	if target.MergeMaxRetries > 0 {
		maxRetries = target.MergeMaxRetries
	}
	maxConcurrent := o.Cfg.MaxConcurrent
	if target.MaxConcurrent > 0 {
		maxConcurrent = target.MaxConcurrent
	}

	logging.Phase("Triaging %s", target.Repo)

	items, err := o.Client.ListOpenItems(ctx, target.Repo)
	if err != nil {
		report.Err = fmt.Errorf("list open items: %w", err)
		return report
	}
	logging.Info("%s: %d open items", target.Repo, len(items))

	quota, quotaErr := o.Client.RateQuota(ctx)

	cls := &classifier.Classifier{
		MaxRetries: maxRetries,
		AgentLogin: o.Cfg.AgentLogin,
		Now:        o.Now,
	}
	report.State = cls.Snapshot(target.Repo, items)
	report.HealthScore = classifier.HealthScore(report.State)

	monitor := &resources.Monitor{
		MaxConcurrent: maxConcurrent,
		AgentLogin:    o.Cfg.AgentLogin,
		CommentWindow: time.Duration(o.Cfg.CommentRecencyHours) * time.Hour,
		ReviewWindow:  time.Duration(o.Cfg.ReviewRecencyHours) * time.Hour,
		MaxRetries:    maxRetries,
	}
	report.Resources = monitor.Check(quota, quotaErr, items)
	for _, warning := range report.Resources.Warnings {
		logging.Warn("%s: %s", target.Repo, warning)
	}

	report.Workload = workload.Prioritize(items, maxRetries)
	logging.Debug("%s: %d items queued across priority buckets",
		target.Repo, report.Workload.TotalItems())

	plan, err := o.Planner.Plan(ctx, report.State, report.Resources, report.Workload)
	if err != nil {
		// Only a bare strategic planner errors; the composite never does.
		report.Err = fmt.Errorf("planning: %w", err)
		return report
	}
	report.Plan = plan

	logging.Success("%s: planned %d workflow step(s), est. %d API calls",
		target.Repo, len(plan.Workflows), plan.EstimatedAPICalls)
	return report
}

// RunAll cycles every target sequentially. A failed repository does not stop
// the run; its report carries the error and the run moves on.
func (o *Orchestrator) RunAll(ctx context.Context, targets []config.Target) *RunReport {
	run := &RunReport{StartedAt: o.now()}

	for _, target := range targets {
		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		report := o.RunCycle(ctx, target)
		run.Cycles = append(run.Cycles, report)
		if report.Err != nil {
			logging.Error("%s: cycle failed: %v", target.Repo, report.Err)
		}
	}

	run.Duration = o.now().Sub(run.StartedAt)
	return run
}
