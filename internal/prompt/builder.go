// Package prompt builds the prompts sent to the strategic planning AI.
package prompt

import (
	"strconv"
	"strings"

	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

// PlannerSystemPrompt is the system prompt for the strategic planner,
// including the JSON response contract.
func PlannerSystemPrompt() string {
	return PlannerSystemTemplate
}

// BuildPlanningPrompt formats the three per-cycle snapshots into the
// planning prompt.
func BuildPlanningPrompt(state classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) string {
	warnings := "None"
	if len(res.Warnings) > 0 {
		warnings = strings.Join(res.Warnings, ", ")
	}

	replacements := map[string]string{
		"{{REPO}}":               state.Repo,
		"{{TOTAL_BACKLOG}}":      itoa(state.OpenIssuesTotal + state.OpenPRsTotal),
		"{{ISSUES_TOTAL}}":       itoa(state.OpenIssuesTotal),
		"{{PRS_TOTAL}}":          itoa(state.OpenPRsTotal),
		"{{ISSUES_UNPROCESSED}}": itoa(state.OpenIssuesUnprocessed),
		"{{ISSUES_ASSIGNED}}":    itoa(state.OpenIssuesAssignedToAgent),
		"{{PRS_READY}}":          itoa(state.PRsReadyToMerge),
		"{{PRS_PENDING}}":        itoa(state.PRsPendingReview),
		"{{PRS_CHANGES}}":        itoa(state.PRsChangesRequested),
		"{{PRS_BLOCKED}}":        itoa(state.PRsBlocked),
		"{{PRS_DONE}}":           itoa(state.PRsDone),
		"{{API_REMAINING}}":      itoa(res.APIRemaining),
		"{{API_LIMIT}}":          itoa(res.APILimit),
		"{{API_BUDGET}}":         itoa(res.EstimatedAPIBudget),
		"{{ACTIVE_PRS}}":         itoa(res.ActivePRs),
		"{{MAX_CONCURRENT}}":     itoa(res.MaxConcurrent),
		"{{AVAILABLE_SLOTS}}":    itoa(res.AvailableSlots),
		"{{WARNINGS}}":           warnings,
		"{{WL_QUICK_WINS}}":      itoa(len(w.QuickWins)),
		"{{WL_BLOCKED}}":         itoa(len(w.BlockedPRs)),
		"{{WL_PENDING}}":         itoa(len(w.PendingReview)),
		"{{WL_CHANGES}}":         itoa(len(w.ChangesRequested)),
		"{{WL_UNPROCESSED}}":     itoa(len(w.UnprocessedIssues)),
	}

	out := PlanningTemplate
	for placeholder, value := range replacements {
		out = strings.ReplaceAll(out, placeholder, value)
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
