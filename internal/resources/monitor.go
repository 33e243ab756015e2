// Package resources estimates what the current cycle can safely spend: API
// quota budget and coding-agent concurrency slots.
package resources

import (
	"fmt"
	"time"

	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/logging"
)

const (
	// SafeBudgetNumerator/Denominator keep 20% of remaining quota in
	// reserve against undercounting from concurrent consumers.
	SafeBudgetNumerator   = 8
	SafeBudgetDenominator = 10

	// DefaultCostPerItem is the empirical API-call cost of processing one
	// item. Fixed, not derived dynamically; items observed in practice cost
	// around five calls each.
	DefaultCostPerItem = 5

	// Fallback telemetry used when the quota probe itself fails.
	fallbackRemaining = 500
	fallbackLimit     = 5000
	fallbackBudget    = 10
)

// ResourceState is the available-capacity snapshot for one cycle. It is
// recomputed every cycle and never persisted.
//
// AvailableSlots is clamped at zero, so AvailableSlots + ActivePRs never
// exceeds MaxConcurrent except when ActivePRs alone already does.
type ResourceState struct {
	APIRemaining int
	APILimit     int
	APIResetsAt  time.Time

	// SafeBudget is the portion of remaining quota this cycle may spend.
	SafeBudget int
	// EstimatedAPIBudget is SafeBudget divided by the per-item cost: the
	// number of items the cycle can afford to touch.
	EstimatedAPIBudget int

	MaxConcurrent  int
	ActivePRs      int
	AvailableSlots int

	Warnings []string
}

// Monitor computes ResourceState from quota telemetry and the open-PR list.
// The concurrency ceiling is an explicit field, threaded in from
// configuration; there is no process-wide default.
type Monitor struct {
	MaxConcurrent int
	CostPerItem   int

	// AgentLogin identifies agent-authored PRs; only those can occupy
	// agent capacity.
	AgentLogin string

	// CommentWindow and ReviewWindow bound the busy-detection recency
	// checks. Operational tuning values, see busySignals.
	CommentWindow time.Duration
	ReviewWindow  time.Duration

	// MentionMarkers are substrings of a comment body that request agent
	// action. Empty means DefaultMentionMarkers.
	MentionMarkers []string

	// MaxRetries mirrors the classifier's retry ceiling so the conflict
	// signal can ignore PRs that are already blocked.
	MaxRetries int
}

// Check computes the ResourceState for one cycle. quotaErr carries a failed
// quota probe; the monitor degrades to conservative fallback telemetry and a
// warning rather than failing the cycle.
func (m *Monitor) Check(quota githost.RateQuota, quotaErr error, items []githost.Item) ResourceState {
	state := ResourceState{MaxConcurrent: m.MaxConcurrent}

	cost := m.CostPerItem
	if cost <= 0 {
		cost = DefaultCostPerItem
	}

	if quotaErr != nil {
		logging.Warn("rate limit probe failed: %v", quotaErr)
		state.APIRemaining = fallbackRemaining
		state.APILimit = fallbackLimit
		state.SafeBudget = fallbackBudget * cost
		state.EstimatedAPIBudget = fallbackBudget
		state.Warnings = append(state.Warnings,
			fmt.Sprintf("failed to check rate limit: %v", quotaErr))
	} else {
		state.APIRemaining = quota.Remaining
		state.APILimit = quota.Limit
		state.APIResetsAt = quota.ResetsAt
		state.SafeBudget = quota.Remaining * SafeBudgetNumerator / SafeBudgetDenominator
		state.EstimatedAPIBudget = state.SafeBudget / cost

		if quota.Limit > 0 && quota.Remaining < quota.Limit/10 {
			state.Warnings = append(state.Warnings,
				fmt.Sprintf("low API quota: %d/%d remaining", quota.Remaining, quota.Limit))
		}
		if quota.Remaining < 100 {
			state.Warnings = append(state.Warnings,
				"CRITICAL: very low API quota, recommend deferring work")
		}
	}

	for _, it := range items {
		if !it.IsPR() {
			continue
		}
		if signal, busy := m.prBusy(it); busy {
			logging.Debug("PR %s active (%s)", githost.FormatItemRef(it), signal)
			state.ActivePRs++
		}
	}

	state.AvailableSlots = m.MaxConcurrent - state.ActivePRs
	if state.AvailableSlots < 0 {
		state.AvailableSlots = 0
	}

	if state.ActivePRs >= m.MaxConcurrent {
		state.Warnings = append(state.Warnings,
			fmt.Sprintf("agent at capacity: %d/%d PRs", state.ActivePRs, m.MaxConcurrent))
	}
	if state.ActivePRs > 5 {
		state.Warnings = append(state.Warnings,
			fmt.Sprintf("PR review backlog: %d PRs need attention", state.ActivePRs))
	}

	return state
}
