// Package cli provides flag binding and validation for the triage-loop CLI.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/triage-loop/internal/config"
)

// BindFlags registers all CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Repository selection.
	flags.StringSliceVar(&cfg.Repos, "repo", nil, "Repository to triage (owner/name, repeatable)")
	flags.StringVar(&cfg.TargetsFile, "targets", "", "YAML file listing repositories to triage")

	// Strategic planner AI.
	flags.StringVar(&cfg.AIProvider, "ai", "claude", "AI CLI for strategic planning: claude or codex")
	flags.StringVar(&cfg.PlannerModel, "planner-model", "sonnet", "Model for the strategic planner")
	flags.IntVar(&cfg.PlannerTimeout, "planner-timeout", 120, "Seconds before the planner call is abandoned")
	flags.IntVar(&cfg.MaxPlannerRetry, "max-planner-retry", 2, "Max retries per planner invocation")

	// Agent capacity tuning.
	flags.StringVar(&cfg.AgentLogin, "agent-login", "copilot", "Login substring identifying the coding agent")
	flags.IntVar(&cfg.MergeMaxRetries, "merge-max-retries", 3, "Merge attempts before a PR is considered blocked")
	flags.IntVar(&cfg.MaxConcurrent, "max-concurrent", 10, "Concurrency ceiling for the coding agent")
	flags.IntVar(&cfg.CommentRecencyHours, "comment-recency-hours", 24, "Window for recent actionable comments")
	flags.IntVar(&cfg.ReviewRecencyHours, "review-recency-hours", 48, "Window for recent changes-requested reviews")

	// Runtime flags.
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "Produce and print the plan without handing it to executors")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")

	// Notifications.
	flags.StringVar(&cfg.NotifyWebhook, "notify-webhook", "http://127.0.0.1:18789/webhook", "OpenClaw webhook URL")
	flags.StringVar(&cfg.NotifyChannel, "notify-channel", "telegram", "Notification channel")
	flags.StringVar(&cfg.NotifyChatID, "notify-chat-id", "", "Recipient chat ID")
}

// ValidateFlags checks for invalid flag values and combinations after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.AIProvider != "claude" && cfg.AIProvider != "codex" {
		return fmt.Errorf("--ai must be claude or codex, got %q", cfg.AIProvider)
	}

	if cfg.MaxConcurrent <= 0 {
		return fmt.Errorf("--max-concurrent must be positive, got %d", cfg.MaxConcurrent)
	}

	if cfg.MergeMaxRetries <= 0 {
		return fmt.Errorf("--merge-max-retries must be positive, got %d", cfg.MergeMaxRetries)
	}

	if cfg.PlannerTimeout <= 0 {
		return fmt.Errorf("--planner-timeout must be positive, got %d", cfg.PlannerTimeout)
	}

	for _, repo := range cfg.Repos {
		if strings.Count(repo, "/") != 1 || strings.HasPrefix(repo, "/") || strings.HasSuffix(repo, "/") {
			return fmt.Errorf("--repo expects owner/name, got %q", repo)
		}
	}

	// --config must exist if provided.
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	// --targets must exist if provided.
	if cfg.TargetsFile != "" {
		if _, err := os.Stat(cfg.TargetsFile); err != nil {
			return fmt.Errorf("--targets: %w", err)
		}
	}

	return nil
}

// BuildCLIOverrides creates a map of config-file keys for flags explicitly
// set on the command line. Uses Changed() so config file values are not
// clobbered by flag defaults.
func BuildCLIOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"ai":             {"AI_CLI", cfg.AIProvider},
		"planner-model":  {"PLANNER_MODEL", cfg.PlannerModel},
		"agent-login":    {"AGENT_LOGIN", cfg.AgentLogin},
		"targets":        {"TARGETS_FILE", cfg.TargetsFile},
		"notify-webhook": {"NOTIFY_WEBHOOK", cfg.NotifyWebhook},
		"notify-channel": {"NOTIFY_CHANNEL", cfg.NotifyChannel},
		"notify-chat-id": {"NOTIFY_CHAT_ID", cfg.NotifyChatID},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	intFlags := map[string]struct {
		key string
		val int
	}{
		"planner-timeout":       {"PLANNER_TIMEOUT", cfg.PlannerTimeout},
		"max-planner-retry":     {"MAX_PLANNER_RETRY", cfg.MaxPlannerRetry},
		"merge-max-retries":     {"MERGE_MAX_RETRIES", cfg.MergeMaxRetries},
		"max-concurrent":        {"MAX_CONCURRENT", cfg.MaxConcurrent},
		"comment-recency-hours": {"COMMENT_RECENCY_HOURS", cfg.CommentRecencyHours},
		"review-recency-hours":  {"REVIEW_RECENCY_HOURS", cfg.ReviewRecencyHours},
	}
	for flag, mapping := range intFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = fmt.Sprintf("%d", mapping.val)
		}
	}

	if cmd.Flags().Changed("verbose") {
		overrides["VERBOSE"] = fmt.Sprintf("%t", cfg.Verbose)
	}

	return overrides
}
