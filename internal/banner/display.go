// Package banner provides colored banner display functions for the
// triage-loop CLI: the startup header, per-repository cycle summaries, and
// the end-of-run totals.
package banner

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/triage-loop/internal/logging"
	"github.com/CodexForgeBR/triage-loop/internal/orchestrator"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const separator = "═══════════════════════════════════════════════════"

// PrintStartupBanner displays the startup banner with run configuration.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  triage-loop - Repository Triage Orchestrator
//	═══════════════════════════════════════════════════
//	  AI:         claude
//	  Model:      sonnet
//	  Repos:      acme/widgets, acme/gadgets
//	═══════════════════════════════════════════════════
func PrintStartupBanner(ai string, model string, repos []string) {
	sep := headerColor(separator)
	fmt.Println(sep)
	fmt.Println(headerColor("  triage-loop - Repository Triage Orchestrator"))
	fmt.Println(sep)
	fmt.Printf("  AI:         %s\n", ai)
	fmt.Printf("  Model:      %s\n", model)
	fmt.Printf("  Repos:      %s\n", strings.Join(repos, ", "))
	fmt.Println(sep)
}

// PrintCycleSummary displays the outcome of one repository cycle: state
// counts, capacity, health, and the planned workflow steps.
func PrintCycleSummary(report *orchestrator.CycleReport) {
	if report.Err != nil {
		sep := errorColor(separator)
		fmt.Println(sep)
		fmt.Println(errorColor(fmt.Sprintf("  ✗ %s: cycle failed", report.Repo)))
		fmt.Printf("  Error:      %v\n", report.Err)
		fmt.Println(sep)
		return
	}

	sep := headerColor(separator)
	fmt.Println(sep)
	fmt.Println(headerColor(fmt.Sprintf("  %s", report.Repo)))
	fmt.Println(sep)
	fmt.Printf("  Issues:     %d open, %d unprocessed\n",
		report.State.OpenIssuesTotal, report.State.OpenIssuesUnprocessed)
	fmt.Printf("  PRs:        %d open (%d ready, %d blocked, %d pending review)\n",
		report.State.OpenPRsTotal, report.State.PRsReadyToMerge,
		report.State.PRsBlocked, report.State.PRsPendingReview)
	fmt.Printf("  Capacity:   %d/%d agent slots free, API budget %d items\n",
		report.Resources.AvailableSlots, report.Resources.MaxConcurrent,
		report.Resources.EstimatedAPIBudget)
	fmt.Printf("  Health:     %.2f\n", report.HealthScore)

	if report.Plan != nil {
		fmt.Printf("  Plan:       %s\n", report.Plan.Strategy)
		for _, step := range report.Plan.Workflows {
			fmt.Printf("    - %s (batch %d): %s\n", step.Name, step.BatchSize, step.Reasoning)
		}
		if len(report.Plan.SkipWorkflows) > 0 {
			fmt.Printf("  Skipped:    %s\n", strings.Join(report.Plan.SkipWorkflows, ", "))
		}
		for _, warning := range report.Plan.Warnings {
			fmt.Println(warnColor("  ⚠ " + warning))
		}
	}
	fmt.Println(sep)
}

// PrintRunSummary displays the end-of-run totals.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Triage run complete
//	  Repos:      3 ok, 1 failed
//	  Duration:   1m 23s (83s)
//	═══════════════════════════════════════════════════
func PrintRunSummary(run *orchestrator.RunReport) {
	colored := successColor
	mark := "✓"
	switch {
	case run.Interrupted:
		colored = warnColor
		mark = "⚠"
	case run.Failed() > 0:
		colored = errorColor
		mark = "✗"
	}

	secs := int(run.Duration.Seconds())
	sep := colored(separator)
	fmt.Println(sep)
	fmt.Println(colored(fmt.Sprintf("  %s Triage run complete", mark)))
	fmt.Printf("  Repos:      %d ok, %d failed\n", run.Succeeded(), run.Failed())
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(secs), secs)
	fmt.Println(sep)
}
