package githost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Client is the read-only host-platform interface the triage cycle consumes.
type Client interface {
	// ListOpenItems returns a snapshot of every open issue and PR in repo.
	// A failure here is fatal to that repository's cycle.
	ListOpenItems(ctx context.Context, repo string) ([]Item, error)

	// RateQuota returns current rate-limit telemetry for the API token.
	RateQuota(ctx context.Context) (RateQuota, error)
}

// CLIClient implements Client by shelling out to the gh CLI, which also
// handles authentication and pagination.
type CLIClient struct {
	// Bin is the gh executable name; empty means "gh".
	Bin string

	// Now is the clock used for age computation; nil means time.Now.
	Now func() time.Time
}

// NewCLIClient returns a CLIClient using the gh binary from PATH.
func NewCLIClient() *CLIClient {
	return &CLIClient{}
}

func (c *CLIClient) bin() string {
	if c.Bin == "" {
		return "gh"
	}
	return c.Bin
}

func (c *CLIClient) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

const (
	issueListFields = "number,title,labels,assignees,author"
	prListFields    = "number,title,labels,assignees,author,isDraft,mergeable,comments,latestReviews,commits"
)

// ListOpenItems lists open issues and PRs via `gh issue list` and
// `gh pr list`. Items whose fields cannot be fully decoded come back with
// Degraded set rather than aborting the snapshot.
func (c *CLIClient) ListOpenItems(ctx context.Context, repo string) ([]Item, error) {
	issueData, err := c.run(ctx,
		"issue", "list", "--repo", repo, "--state", "open",
		"--limit", "500", "--json", issueListFields)
	if err != nil {
		return nil, fmt.Errorf("list issues for %s: %w", repo, err)
	}

	prData, err := c.run(ctx,
		"pr", "list", "--repo", repo, "--state", "open",
		"--limit", "200", "--json", prListFields)
	if err != nil {
		return nil, fmt.Errorf("list pull requests for %s: %w", repo, err)
	}

	now := c.now()

	issues, err := DecodeIssueList(issueData)
	if err != nil {
		return nil, fmt.Errorf("decode issue list for %s: %w", repo, err)
	}

	prs, err := DecodePRList(prData, now)
	if err != nil {
		return nil, fmt.Errorf("decode pull request list for %s: %w", repo, err)
	}

	return append(issues, prs...), nil
}

// RateQuota queries `gh api rate_limit` for core quota telemetry.
func (c *CLIClient) RateQuota(ctx context.Context) (RateQuota, error) {
	data, err := c.run(ctx, "api", "rate_limit")
	if err != nil {
		return RateQuota{}, fmt.Errorf("query rate limit: %w", err)
	}
	return DecodeRateQuota(data)
}

// run executes gh with the given args and returns its stdout.
func (c *CLIClient) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.bin(), args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("gh %s: %w: %s",
				strings.Join(args[:2], " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("gh %s: %w", strings.Join(args[:2], " "), err)
	}
	return out, nil
}

// Wire shapes for gh's --json output.

type ghLabel struct {
	Name string `json:"name"`
}

type ghActor struct {
	Login string `json:"login"`
}

type ghIssue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Labels    []ghLabel `json:"labels"`
	Assignees []ghActor `json:"assignees"`
	Author    ghActor   `json:"author"`
}

type ghComment struct {
	Author    ghActor   `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type ghReview struct {
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ghCommit struct {
	CommittedDate time.Time `json:"committedDate"`
}

type ghPR struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Labels        []ghLabel  `json:"labels"`
	Assignees     []ghActor  `json:"assignees"`
	Author        ghActor    `json:"author"`
	IsDraft       bool       `json:"isDraft"`
	Mergeable     string     `json:"mergeable"` // MERGEABLE | CONFLICTING | UNKNOWN
	Comments      []ghComment `json:"comments"`
	LatestReviews []ghReview  `json:"latestReviews"`
	Commits       []ghCommit  `json:"commits"`
}

// DecodeIssueList converts `gh issue list --json` output into Items.
func DecodeIssueList(data []byte) ([]Item, error) {
	var raw []ghIssue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for _, is := range raw {
		items = append(items, Item{
			Number:    is.Number,
			Title:     is.Title,
			Kind:      KindIssue,
			Labels:    labelNames(is.Labels),
			Assignees: actorLogins(is.Assignees),
			Author:    is.Author.Login,
			Mergeable: true,
		})
	}
	return items, nil
}

// DecodePRList converts `gh pr list --json` output into Items. Ages are
// computed relative to now. A PR with an unparseable entry is marked
// Degraded instead of being dropped.
func DecodePRList(data []byte, now time.Time) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raw))
	for i, msg := range raw {
		var pr ghPR
		if err := json.Unmarshal(msg, &pr); err != nil {
			// Salvage at least the PR number so the monitor can count it.
			var min struct {
				Number int `json:"number"`
			}
			_ = json.Unmarshal(msg, &min)
			items = append(items, Item{
				Number:   min.Number,
				Kind:     KindPR,
				Degraded: true,
			})
			continue
		}
		if pr.Number == 0 {
			return nil, fmt.Errorf("pull request entry %d has no number", i)
		}
		items = append(items, itemFromPR(pr, now))
	}
	return items, nil
}

func itemFromPR(pr ghPR, now time.Time) Item {
	it := Item{
		Number:    pr.Number,
		Title:     pr.Title,
		Kind:      KindPR,
		Labels:    labelNames(pr.Labels),
		Assignees: actorLogins(pr.Assignees),
		Author:    pr.Author.Login,
		Draft:     pr.IsDraft,
		Mergeable: !strings.EqualFold(pr.Mergeable, "CONFLICTING"),
	}

	if n := len(pr.Comments); n > 0 {
		last := pr.Comments[n-1]
		it.LastComment = &Comment{
			Author: last.Author.Login,
			Body:   last.Body,
			Age:    now.Sub(last.CreatedAt),
		}
	}

	var lastReviewAt time.Time
	if n := len(pr.LatestReviews); n > 0 {
		last := pr.LatestReviews[n-1]
		lastReviewAt = last.SubmittedAt
		it.LastReview = &Review{
			State: last.State,
			Age:   now.Sub(last.SubmittedAt),
		}
	}

	if !lastReviewAt.IsZero() {
		for _, c := range pr.Commits {
			if c.CommittedDate.After(lastReviewAt) {
				it.CommitAfterReview = true
				break
			}
		}
	}

	return it
}

// DecodeRateQuota extracts core quota telemetry from `gh api rate_limit`.
func DecodeRateQuota(data []byte) (RateQuota, error) {
	var raw struct {
		Resources struct {
			Core struct {
				Limit     int   `json:"limit"`
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return RateQuota{}, fmt.Errorf("decode rate limit: %w", err)
	}
	if raw.Resources.Core.Limit == 0 {
		return RateQuota{}, fmt.Errorf("rate limit payload missing resources.core")
	}
	return RateQuota{
		Remaining: raw.Resources.Core.Remaining,
		Limit:     raw.Resources.Core.Limit,
		ResetsAt:  time.Unix(raw.Resources.Core.Reset, 0).UTC(),
	}, nil
}

func labelNames(labels []ghLabel) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

func actorLogins(actors []ghActor) []string {
	logins := make([]string, 0, len(actors))
	for _, a := range actors {
		logins = append(logins, a.Login)
	}
	return logins
}

// ParseRepo splits an owner/name reference, validating its shape.
func ParseRepo(ref string) (owner, name string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference: expected owner/name, got %q", ref)
	}
	return parts[0], parts[1], nil
}

// FormatItemRef renders an item as "#<number>" for log lines.
func FormatItemRef(it Item) string {
	return "#" + strconv.Itoa(it.Number)
}
