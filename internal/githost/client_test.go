package githost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestDecodeIssueList(t *testing.T) {
	data := []byte(`[
		{"number": 12, "title": "Crash on startup",
		 "labels": [{"name": "bug"}, {"name": "agent-candidate"}],
		 "assignees": [{"login": "copilot-swe-agent"}],
		 "author": {"login": "alice"}}
	]`)

	items, err := DecodeIssueList(data)
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, 12, it.Number)
	assert.Equal(t, KindIssue, it.Kind)
	assert.False(t, it.IsPR())
	assert.Equal(t, []string{"bug", "agent-candidate"}, it.Labels)
	assert.Equal(t, []string{"copilot-swe-agent"}, it.Assignees)
	assert.Equal(t, "alice", it.Author)
	assert.True(t, it.Mergeable)
	assert.False(t, it.Degraded)
}

func TestDecodePRList(t *testing.T) {
	data := []byte(`[
		{"number": 40, "title": "Fix parser",
		 "labels": [{"name": "agent-state:changes_requested"}],
		 "assignees": [], "author": {"login": "copilot-swe-agent"},
		 "isDraft": false, "mergeable": "CONFLICTING",
		 "comments": [
			{"author": {"login": "bob"}, "body": "@copilot please fix", "createdAt": "2026-08-30T10:00:00Z"}
		 ],
		 "latestReviews": [
			{"state": "CHANGES_REQUESTED", "submittedAt": "2026-08-29T12:00:00Z"}
		 ],
		 "commits": [
			{"committedDate": "2026-08-29T09:00:00Z"},
			{"committedDate": "2026-08-29T20:00:00Z"}
		 ]}
	]`)

	items, err := DecodePRList(data, testNow)
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, 40, it.Number)
	assert.True(t, it.IsPR())
	assert.False(t, it.Mergeable)

	require.NotNil(t, it.LastComment)
	assert.Equal(t, "bob", it.LastComment.Author)
	assert.Equal(t, 2*time.Hour, it.LastComment.Age)

	require.NotNil(t, it.LastReview)
	assert.Equal(t, "CHANGES_REQUESTED", it.LastReview.State)
	assert.Equal(t, 24*time.Hour, it.LastReview.Age)

	// The 20:00 commit came after the 12:00 review.
	assert.True(t, it.CommitAfterReview)
}

func TestDecodePRListNoCommitAfterReview(t *testing.T) {
	data := []byte(`[
		{"number": 41, "title": "Add cache", "author": {"login": "copilot-swe-agent"},
		 "mergeable": "MERGEABLE",
		 "latestReviews": [{"state": "CHANGES_REQUESTED", "submittedAt": "2026-08-30T00:00:00Z"}],
		 "commits": [{"committedDate": "2026-08-29T00:00:00Z"}]}
	]`)

	items, err := DecodePRList(data, testNow)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].CommitAfterReview)
	assert.True(t, items[0].Mergeable)
}

func TestDecodePRListDegradedEntry(t *testing.T) {
	// A malformed timestamp must degrade the item, not fail the snapshot.
	data := []byte(`[
		{"number": 50, "title": "ok", "author": {"login": "a"}, "mergeable": "MERGEABLE"},
		{"number": 51, "comments": [{"createdAt": "not-a-timestamp"}]}
	]`)

	items, err := DecodePRList(data, testNow)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.False(t, items[0].Degraded)
	assert.True(t, items[1].Degraded)
	assert.Equal(t, 51, items[1].Number)
}

func TestDecodeRateQuota(t *testing.T) {
	data := []byte(`{"resources": {"core": {"limit": 5000, "remaining": 4200, "reset": 1788091200}}}`)

	q, err := DecodeRateQuota(data)
	require.NoError(t, err)
	assert.Equal(t, 4200, q.Remaining)
	assert.Equal(t, 5000, q.Limit)
	assert.Equal(t, time.Unix(1788091200, 0).UTC(), q.ResetsAt)
}

func TestDecodeRateQuotaMissingCore(t *testing.T) {
	_, err := DecodeRateQuota([]byte(`{"resources": {}}`))
	assert.ErrorContains(t, err, "missing resources.core")
}

func TestParseRepo(t *testing.T) {
	owner, name, err := ParseRepo("octo/widgets")
	require.NoError(t, err)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "widgets", name)

	for _, bad := range []string{"", "octo", "octo/", "/widgets", "a/b/c"} {
		_, _, err := ParseRepo(bad)
		assert.Error(t, err, "ref %q", bad)
	}
}
