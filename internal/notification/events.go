package notification

import (
	"fmt"

	"github.com/CodexForgeBR/triage-loop/internal/orchestrator"
)

// BuildCycleMessage formats one repository cycle outcome for chat delivery.
func BuildCycleMessage(report *orchestrator.CycleReport) string {
	if report.Err != nil {
		return fmt.Sprintf("❌ %s triage failed: %v", report.Repo, report.Err)
	}

	steps := 0
	if report.Plan != nil {
		steps = len(report.Plan.Workflows)
	}
	return fmt.Sprintf("✅ %s triaged: %d issues / %d PRs, %d step(s) planned, health %.2f",
		report.Repo, report.State.OpenIssuesTotal, report.State.OpenPRsTotal,
		steps, report.HealthScore)
}

// BuildRunMessage formats the end-of-run totals for chat delivery.
func BuildRunMessage(run *orchestrator.RunReport) string {
	if run.Interrupted {
		return fmt.Sprintf("⏸️ triage run interrupted after %d repo(s)", len(run.Cycles))
	}
	if failed := run.Failed(); failed > 0 {
		return fmt.Sprintf("⚠️ triage run finished: %d ok, %d failed", run.Succeeded(), failed)
	}
	return fmt.Sprintf("✅ triage run finished: %d repo(s) ok in %ds",
		run.Succeeded(), int(run.Duration.Seconds()))
}
