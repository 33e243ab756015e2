package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/triage-loop/internal/cli"
	"github.com/CodexForgeBR/triage-loop/internal/config"
)

func newTestCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{Use: "triage-loop", RunE: func(*cobra.Command, []string) error { return nil }}
	cli.BindFlags(cmd, cfg)
	return cmd
}

func TestBindFlagsDefaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)

	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "claude", cfg.AIProvider)
	assert.Equal(t, 10, cfg.MaxConcurrent)
	assert.Equal(t, 3, cfg.MergeMaxRetries)
	assert.False(t, cfg.DryRun)
}

func TestBindFlagsRepeatableRepo(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)

	require.NoError(t, cmd.ParseFlags([]string{
		"--repo", "octo/widgets",
		"--repo", "octo/gadgets",
		"--dry-run",
	}))

	assert.Equal(t, []string{"octo/widgets", "octo/gadgets"}, cfg.Repos)
	assert.True(t, cfg.DryRun)
}

func TestValidateFlagsRejectsUnknownAI(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--ai", "gemini"}))

	err := cli.ValidateFlags(cmd, cfg)
	assert.ErrorContains(t, err, "--ai must be claude or codex")
}

func TestValidateFlagsRejectsBadRepo(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--repo", "not-a-repo"}))

	err := cli.ValidateFlags(cmd, cfg)
	assert.ErrorContains(t, err, "owner/name")
}

func TestValidateFlagsRejectsNonPositiveCeiling(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--max-concurrent", "0"}))

	err := cli.ValidateFlags(cmd, cfg)
	assert.ErrorContains(t, err, "--max-concurrent")
}

func TestValidateFlagsMissingConfigFile(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "absent")}))

	err := cli.ValidateFlags(cmd, cfg)
	assert.ErrorContains(t, err, "--config")
}

func TestBuildCLIOverridesOnlyChangedFlags(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := newTestCommand(cfg)

	targets := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(targets, []byte("repos:\n  - repo: octo/widgets\n"), 0o644))

	require.NoError(t, cmd.ParseFlags([]string{
		"--max-concurrent", "4",
		"--targets", targets,
	}))

	overrides := cli.BuildCLIOverrides(cmd, cfg)

	assert.Equal(t, "4", overrides["MAX_CONCURRENT"])
	assert.Equal(t, targets, overrides["TARGETS_FILE"])
	// Flags left at their defaults must not appear as overrides.
	assert.NotContains(t, overrides, "AI_CLI")
	assert.NotContains(t, overrides, "MERGE_MAX_RETRIES")
}
