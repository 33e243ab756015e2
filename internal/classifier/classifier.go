// Package classifier builds the canonical repository snapshot consumed by
// the prioritizer and planner. It only reads; label mutation belongs to the
// external executors.
package classifier

import (
	"time"

	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/labels"
	"github.com/CodexForgeBR/triage-loop/internal/logging"
)

// RepoState is a point-in-time snapshot of a repository's triage state.
// It is constructed fresh each cycle and never mutated afterwards.
//
// The five PR counters partition the full open-PR set exactly, and
// OpenIssuesUnprocessed never exceeds OpenIssuesTotal; both invariants hold
// by construction.
type RepoState struct {
	Repo      string
	Timestamp time.Time

	OpenIssuesTotal           int
	OpenIssuesUnprocessed     int
	OpenIssuesAssignedToAgent int

	OpenPRsTotal        int
	PRsPendingReview    int
	PRsChangesRequested int
	PRsReadyToMerge     int
	PRsBlocked          int
	PRsDone             int

	// Derived scalars.
	AgentActivePRs     int // open PRs not yet done
	QuickWinsAvailable int
	TrulyBlockedPRs    int
}

// Classifier turns raw item snapshots into a RepoState.
type Classifier struct {
	// MaxRetries is the merge-attempt ceiling beyond which a ready PR is
	// reclassified as blocked.
	MaxRetries int

	// AgentLogin identifies the coding agent in assignee lists.
	AgentLogin string

	// Now supplies the snapshot timestamp; nil means time.Now.
	Now func() time.Time
}

// Snapshot classifies every open item into a RepoState. Degraded items are
// excluded with a logged warning, shrinking counts rather than failing the
// snapshot. Classifying the same item list twice yields identical states.
func (c *Classifier) Snapshot(repo string, items []githost.Item) RepoState {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	state := RepoState{Repo: repo, Timestamp: now}

	for _, it := range items {
		if it.Degraded {
			logging.Warn("%s: skipping %s %s: could not read item state",
				repo, it.Kind, githost.FormatItemRef(it))
			continue
		}

		if !it.IsPR() {
			state.OpenIssuesTotal++
			if labels.IssueUnprocessed(it.Labels) {
				state.OpenIssuesUnprocessed++
			}
			if labels.AssignedToAgent(it.Assignees, c.AgentLogin) {
				state.OpenIssuesAssignedToAgent++
			}
			continue
		}

		state.OpenPRsTotal++
		switch labels.PRState(it.Labels, it.Draft, c.MaxRetries) {
		case labels.StatePendingReview:
			state.PRsPendingReview++
		case labels.StateChangesRequested:
			state.PRsChangesRequested++
		case labels.StateReadyToMerge:
			state.PRsReadyToMerge++
		case labels.StateBlocked:
			state.PRsBlocked++
		case labels.StateDone:
			state.PRsDone++
		}
	}

	state.AgentActivePRs = state.OpenPRsTotal - state.PRsDone
	state.QuickWinsAvailable = state.PRsReadyToMerge
	state.TrulyBlockedPRs = state.PRsBlocked

	return state
}

// HealthScore rates a snapshot from 0.0 (poor) to 1.0 (excellent), penalizing
// backlog size and the blocked-PR share.
func HealthScore(state RepoState) float64 {
	total := state.OpenIssuesTotal + state.OpenPRsTotal
	if total == 0 {
		return 1.0
	}

	backlogPenalty := float64(total) / 50.0
	if backlogPenalty > 1.0 {
		backlogPenalty = 1.0
	}

	openPRs := state.OpenPRsTotal
	if openPRs == 0 {
		openPRs = 1
	}
	blockedPenalty := float64(state.PRsBlocked) / float64(openPRs)

	score := 1.0 - (backlogPenalty+blockedPenalty)/2.0
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
