package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/triage-loop/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileParsesWhitelistedKeys(t *testing.T) {
	path := writeTempConfig(t, `
# comment line
AGENT_LOGIN = my-bot
MERGE_MAX_RETRIES=5

NOT_WHITELISTED=ignored
line without equals sign
MAX_CONCURRENT = 4
`)

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "my-bot", m["AGENT_LOGIN"])
	assert.Equal(t, "5", m["MERGE_MAX_RETRIES"])
	assert.Equal(t, "4", m["MAX_CONCURRENT"])
	assert.NotContains(t, m, "NOT_WHITELISTED")
	assert.Len(t, m, 3)
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestApplyMapToConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"AI_CLI":                "codex",
		"MERGE_MAX_RETRIES":     "7",
		"COMMENT_RECENCY_HOURS": "12",
		"VERBOSE":               "true",
	})

	assert.Equal(t, "codex", cfg.AIProvider)
	assert.Equal(t, 7, cfg.MergeMaxRetries)
	assert.Equal(t, 12, cfg.CommentRecencyHours)
	assert.True(t, cfg.Verbose)
}

func TestApplyMapToConfigBadIntIgnored(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{"MAX_CONCURRENT": "not-a-number"})
	assert.Equal(t, 10, cfg.MaxConcurrent)
}

func TestLoadWithPrecedenceOrder(t *testing.T) {
	global := writeTempConfig(t, "AGENT_LOGIN=global-bot\nMAX_CONCURRENT=2\n")
	project := writeTempConfig(t, "AGENT_LOGIN=project-bot\n")

	cfg, err := config.LoadWithPrecedence(global, project, "", map[string]string{
		"MERGE_MAX_RETRIES": "9",
	})
	require.NoError(t, err)

	// Project overrides global; CLI overrides everything; untouched keys keep
	// the lower-priority values.
	assert.Equal(t, "project-bot", cfg.AgentLogin)
	assert.Equal(t, 2, cfg.MaxConcurrent)
	assert.Equal(t, 9, cfg.MergeMaxRetries)
}

func TestLoadWithPrecedenceMissingGlobalIsNotFatal(t *testing.T) {
	cfg, err := config.LoadWithPrecedence(filepath.Join(t.TempDir(), "absent"), "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "copilot", cfg.AgentLogin)
}

func TestLoadWithPrecedenceMissingExplicitIsFatal(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestLoadTargets(t *testing.T) {
	path := writeTempConfig(t, `
repos:
  - repo: octo/widgets
  - repo: octo/gadgets
    merge_max_retries: 5
    max_concurrent: 3
`)

	targets, err := config.LoadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	assert.Equal(t, "octo/widgets", targets[0].Repo)
	assert.Zero(t, targets[0].MergeMaxRetries)
	assert.Equal(t, "octo/gadgets", targets[1].Repo)
	assert.Equal(t, 5, targets[1].MergeMaxRetries)
	assert.Equal(t, 3, targets[1].MaxConcurrent)
}

func TestLoadTargetsMissingRepo(t *testing.T) {
	path := writeTempConfig(t, "repos:\n  - merge_max_retries: 2\n")
	_, err := config.LoadTargets(path)
	assert.ErrorContains(t, err, "missing repo")
}

func TestResolveTargetsMergesAndDeduplicates(t *testing.T) {
	path := writeTempConfig(t, `
repos:
  - repo: octo/widgets
    max_concurrent: 3
  - repo: octo/tools
`)

	cfg := config.NewDefaultConfig()
	cfg.Repos = []string{"octo/widgets", "octo/extra"}
	cfg.TargetsFile = path

	targets, err := config.ResolveTargets(cfg)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	// CLI entry wins for duplicates, file-only entries follow.
	assert.Equal(t, "octo/widgets", targets[0].Repo)
	assert.Zero(t, targets[0].MaxConcurrent)
	assert.Equal(t, "octo/extra", targets[1].Repo)
	assert.Equal(t, "octo/tools", targets[2].Repo)
}

func TestResolveTargetsEmpty(t *testing.T) {
	_, err := config.ResolveTargets(config.NewDefaultConfig())
	assert.ErrorContains(t, err, "no repositories configured")
}
