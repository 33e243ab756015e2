package resources

import (
	"strings"

	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/labels"
)

// DefaultMentionMarkers are comment-body substrings that request agent
// action. Tuning values, not invariants.
var DefaultMentionMarkers = []string{"@copilot", "[agent:"}

// busySignal is one independent check in the busy-detection decision table.
// The platform exposes no direct "agent busy" signal, so activity is
// inferred behaviorally; signals are evaluated in order and the first match
// wins. False positives are acceptable, under-counting load is not.
type busySignal struct {
	name    string
	applies func(m *Monitor, it githost.Item) bool
}

var busySignals = []busySignal{
	{
		// A draft PR means the agent is still composing it.
		name: "draft",
		applies: func(m *Monitor, it githost.Item) bool {
			return it.Draft
		},
	},
	{
		// An unresolved merge conflict on a PR that is not already blocked
		// will be auto-fixed by the agent.
		name: "merge_conflict",
		applies: func(m *Monitor, it githost.Item) bool {
			return !it.Mergeable &&
				labels.PRState(it.Labels, it.Draft, m.MaxRetries) != labels.StateBlocked
		},
	},
	{
		// A fresh comment by the agent, or one mentioning it with an
		// actionable marker, means a work item was just handed to it.
		name: "recent_mention",
		applies: func(m *Monitor, it githost.Item) bool {
			c := it.LastComment
			if c == nil || c.Age >= m.CommentWindow {
				return false
			}
			if m.AgentLogin != "" &&
				strings.Contains(strings.ToLower(c.Author), strings.ToLower(m.AgentLogin)) {
				return true
			}
			body := strings.ToLower(c.Body)
			for _, marker := range m.mentionMarkers() {
				if strings.Contains(body, strings.ToLower(marker)) {
					return true
				}
			}
			return false
		},
	},
	{
		// A recent changes-requested review with no commit after it means
		// the agent has feedback it has not yet addressed.
		name: "review_followup",
		applies: func(m *Monitor, it githost.Item) bool {
			r := it.LastReview
			return r != nil &&
				r.State == "CHANGES_REQUESTED" &&
				r.Age < m.ReviewWindow &&
				!it.CommitAfterReview
		},
	},
}

func (m *Monitor) mentionMarkers() []string {
	if len(m.MentionMarkers) > 0 {
		return m.MentionMarkers
	}
	return DefaultMentionMarkers
}

// prBusy reports whether the PR occupies an agent capacity slot, and which
// signal decided it. A degraded item defaults to busy: failing to read a PR
// must never free up capacity it might actually be using.
func (m *Monitor) prBusy(it githost.Item) (string, bool) {
	if it.Degraded {
		return "degraded", true
	}

	// Only agent-authored PRs can consume agent capacity.
	if m.AgentLogin != "" &&
		!strings.Contains(strings.ToLower(it.Author), strings.ToLower(m.AgentLogin)) {
		return "", false
	}

	for _, sig := range busySignals {
		if sig.applies(m, it) {
			return sig.name, true
		}
	}
	return "", false
}
