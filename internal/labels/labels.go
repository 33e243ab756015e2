// Package labels derives canonical triage state from host-platform label
// sets. Everything here is a pure function of label strings so that
// classification is re-derivable and testable without network access.
//
// Two label prefixes persist state at the platform boundary, both owned and
// mutated by external executors and read-only here:
//
//	agent-state:<state>     canonical PR state
//	agent-merge-attempt:<n> merge attempt counter
package labels

import (
	"strconv"
	"strings"
)

// Label prefixes and markers persisted on the host platform.
const (
	StatePrefix = "agent-state:"
	RetryPrefix = "agent-merge-attempt:"

	// CandidateLabel marks an issue already evaluated for automation;
	// OptOutLabel marks an issue explicitly withheld from it. An issue with
	// neither is unprocessed.
	CandidateLabel = "agent-candidate"
	OptOutLabel    = "no-automation"
)

// State is the canonical state of an open pull request.
type State string

const (
	StatePendingReview    State = "pending_review"
	StateChangesRequested State = "changes_requested"
	StateReadyToMerge     State = "ready_to_merge"
	StateBlocked          State = "blocked"
	StateDone             State = "done"
)

// AllStates lists every canonical state. The five states partition the open
// PR set: every open PR maps to exactly one.
var AllStates = []State{
	StatePendingReview,
	StateChangesRequested,
	StateReadyToMerge,
	StateBlocked,
	StateDone,
}

// knownStates is the recognition set for state-label values.
var knownStates = map[State]bool{
	StatePendingReview:    true,
	StateChangesRequested: true,
	StateReadyToMerge:     true,
	StateBlocked:          true,
	StateDone:             true,
}

// StateFromLabels extracts the canonical-state label value by prefix match.
// The second return is false when no state label is present or its value is
// unrecognized.
func StateFromLabels(lbls []string) (State, bool) {
	for _, l := range lbls {
		name := strings.ToLower(strings.TrimSpace(l))
		if !strings.HasPrefix(name, StatePrefix) {
			continue
		}
		s := State(name[len(StatePrefix):])
		if knownStates[s] {
			return s, true
		}
		return "", false
	}
	return "", false
}

// MergeAttempts returns the merge-attempt counter from the retry label, or 0
// when the label is absent or unparseable.
func MergeAttempts(lbls []string) int {
	for _, l := range lbls {
		name := strings.ToLower(strings.TrimSpace(l))
		if !strings.HasPrefix(name, RetryPrefix) {
			continue
		}
		if n, err := strconv.Atoi(name[len(RetryPrefix):]); err == nil {
			return n
		}
	}
	return 0
}

// PRState classifies one open pull request. Rules, in priority order:
//
//  1. Merge attempts at or above maxRetries force blocked, overriding any
//     state label.
//  2. Otherwise the state label decides.
//  3. A draft labeled changes_requested counts as pending_review: a draft
//     means the agent is still iterating, not stalled awaiting a human.
//  4. No state label, or an unrecognized value, defaults to pending_review.
//     Unlabeled PRs fail open toward attention, never toward silent drop.
func PRState(lbls []string, draft bool, maxRetries int) State {
	if MergeAttempts(lbls) >= maxRetries {
		return StateBlocked
	}

	state, ok := StateFromLabels(lbls)
	if !ok {
		return StatePendingReview
	}

	if state == StateChangesRequested && draft {
		return StatePendingReview
	}

	return state
}

// IssueUnprocessed reports whether an issue has seen no triage decision yet:
// neither the candidate label nor the opt-out label is present.
func IssueUnprocessed(lbls []string) bool {
	for _, l := range lbls {
		switch strings.ToLower(strings.TrimSpace(l)) {
		case CandidateLabel, OptOutLabel:
			return false
		}
	}
	return true
}

// AssignedToAgent reports whether any assignee login contains agentLogin,
// case-insensitively. Substring match because platforms decorate bot logins
// (e.g. "copilot-swe-agent").
func AssignedToAgent(assignees []string, agentLogin string) bool {
	if agentLogin == "" {
		return false
	}
	needle := strings.ToLower(agentLogin)
	for _, a := range assignees {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}
