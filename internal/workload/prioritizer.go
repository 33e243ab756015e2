// Package workload buckets open items into priority classes for the planner.
//
// Bucketing goes through labels.PRState, the same function the classifier
// uses, so an item's bucket always matches its canonical state by
// construction rather than by convention.
package workload

import (
	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/labels"
)

// PrioritizedWorkload holds item numbers bucketed by priority class, each in
// host-assigned arrival order. An item number appears in at most one bucket.
// Derived per cycle and consumed immediately by the planner, never retained.
type PrioritizedWorkload struct {
	// QuickWins are PRs believed mergeable right now.
	QuickWins []int
	// BlockedPRs exceeded the merge retry budget and need a human.
	BlockedPRs        []int
	PendingReview     []int
	ChangesRequested  []int
	UnprocessedIssues []int
}

// TotalItems returns the number of bucketed items.
func (w PrioritizedWorkload) TotalItems() int {
	return len(w.QuickWins) + len(w.BlockedPRs) + len(w.PendingReview) +
		len(w.ChangesRequested) + len(w.UnprocessedIssues)
}

// Prioritize buckets every open item. Arrival order is preserved inside each
// bucket; no re-sorting happens beyond bucket assignment, keeping ties stable
// and auditable. Done-state PRs need no further action and are not queued;
// degraded items are excluded, consistent with the classifier.
func Prioritize(items []githost.Item, maxRetries int) PrioritizedWorkload {
	var w PrioritizedWorkload

	for _, it := range items {
		if it.Degraded {
			continue
		}

		if !it.IsPR() {
			if labels.IssueUnprocessed(it.Labels) {
				w.UnprocessedIssues = append(w.UnprocessedIssues, it.Number)
			}
			continue
		}

		switch labels.PRState(it.Labels, it.Draft, maxRetries) {
		case labels.StateReadyToMerge:
			w.QuickWins = append(w.QuickWins, it.Number)
		case labels.StateBlocked:
			w.BlockedPRs = append(w.BlockedPRs, it.Number)
		case labels.StatePendingReview:
			w.PendingReview = append(w.PendingReview, it.Number)
		case labels.StateChangesRequested:
			w.ChangesRequested = append(w.ChangesRequested, it.Number)
		case labels.StateDone:
			// Nothing left to do.
		}
	}

	return w
}
