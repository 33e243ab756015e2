// Package config defines the triage-loop configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides. The list of repositories to
// triage comes from repeated --repo flags and/or a YAML targets file.
package config

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [14]string{
	"AI_CLI",
	"PLANNER_MODEL",
	"PLANNER_TIMEOUT",
	"MAX_PLANNER_RETRY",
	"AGENT_LOGIN",
	"MERGE_MAX_RETRIES",
	"MAX_CONCURRENT",
	"COMMENT_RECENCY_HOURS",
	"REVIEW_RECENCY_HOURS",
	"TARGETS_FILE",
	"VERBOSE",
	"NOTIFY_WEBHOOK",
	"NOTIFY_CHANNEL",
	"NOTIFY_CHAT_ID",
}

// Config holds every configuration field for the triage-loop CLI.
type Config struct {
	// Strategic planner AI selection.
	AIProvider      string
	PlannerModel    string
	PlannerTimeout  int // seconds
	MaxPlannerRetry int

	// Coding agent identity and capacity.
	AgentLogin      string
	MergeMaxRetries int
	MaxConcurrent   int

	// Busy-detection recency windows. Tuning knobs, not correctness
	// thresholds; the defaults match observed agent turnaround times.
	CommentRecencyHours int
	ReviewRecencyHours  int

	// Repository selection.
	Repos       []string
	TargetsFile string

	// Runtime flags.
	DryRun  bool
	Verbose bool

	// Notification settings.
	NotifyWebhook string
	NotifyChannel string
	NotifyChatID  string

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		AIProvider:          "claude",
		PlannerModel:        "sonnet",
		PlannerTimeout:      120,
		MaxPlannerRetry:     2,
		AgentLogin:          "copilot",
		MergeMaxRetries:     3,
		MaxConcurrent:       10,
		CommentRecencyHours: 24,
		ReviewRecencyHours:  48,
		NotifyWebhook:       "http://127.0.0.1:18789/webhook",
		NotifyChannel:       "telegram",
	}
}
