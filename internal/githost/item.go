// Package githost models the host-platform boundary: point-in-time snapshots
// of open issues and pull requests, rate-limit telemetry, and a Client
// implementation that shells out to the gh CLI.
//
// The rest of the system treats the platform as a flat store of
// immutable-per-read label strings; everything here is read-only.
package githost

import "time"

// Kind distinguishes issues from pull requests.
type Kind string

const (
	KindIssue Kind = "issue"
	KindPR    Kind = "pr"
)

// Comment is the most recent comment on an item.
type Comment struct {
	Author string
	Body   string
	Age    time.Duration
}

// Review is the most recent review on a pull request.
// State uses the platform's values, e.g. "CHANGES_REQUESTED" or "APPROVED".
type Review struct {
	State string
	Age   time.Duration
}

// Item is a read-only snapshot of one open issue or pull request.
//
// Degraded marks items whose enrichment could not be fully read; they are
// excluded from classification and counted as busy by the resource monitor
// rather than failing the cycle.
type Item struct {
	Number    int
	Title     string
	Kind      Kind
	Labels    []string
	Draft     bool
	Assignees []string
	Author    string

	// Mergeable is false only when the platform reports a merge conflict.
	Mergeable bool

	LastComment       *Comment
	LastReview        *Review
	CommitAfterReview bool

	Degraded bool
}

// IsPR reports whether the item is a pull request.
func (it Item) IsPR() bool {
	return it.Kind == KindPR
}

// RateQuota is the platform's rate-limit telemetry at read time.
type RateQuota struct {
	Remaining int
	Limit     int
	ResetsAt  time.Time
}
