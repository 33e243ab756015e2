package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/triage-loop/internal/ai"
	"github.com/CodexForgeBR/triage-loop/internal/banner"
	"github.com/CodexForgeBR/triage-loop/internal/cli"
	"github.com/CodexForgeBR/triage-loop/internal/config"
	"github.com/CodexForgeBR/triage-loop/internal/exitcode"
	"github.com/CodexForgeBR/triage-loop/internal/githost"
	"github.com/CodexForgeBR/triage-loop/internal/logging"
	"github.com/CodexForgeBR/triage-loop/internal/notification"
	"github.com/CodexForgeBR/triage-loop/internal/orchestrator"
	"github.com/CodexForgeBR/triage-loop/internal/planner"
	sighandler "github.com/CodexForgeBR/triage-loop/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "triage-loop",
		Short:   "Repository triage orchestrator for a bounded-capacity coding agent",
		Long:    "Triage Loop classifies open issues and PRs, measures agent capacity and API quota, and plans one cycle of bounded triage work per repository.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags after parsing
			if err := cli.ValidateFlags(cmd, cfg); err != nil {
				return err
			}
			return runTriage(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Bind all CLI flags to the config
	cli.BindFlags(rootCmd, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
}

func runTriage(cmd *cobra.Command, cfg *config.Config) error {
	// Load config with full precedence chain. CLI flags are already bound
	// to cfg; file-based configs layer underneath explicit flags.
	cliOverrides := cli.BuildCLIOverrides(cmd, cfg)

	finalCfg, err := config.LoadWithPrecedence("", "", cfg.ConfigFile, cliOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Merge CLI-only fields (not loaded from config files).
	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.Repos = cfg.Repos
	finalCfg.DryRun = cfg.DryRun
	cfg = finalCfg

	logging.SetVerbose(cfg.Verbose)

	targets, err := config.ResolveTargets(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupted — finishing current repository...")
	})

	orch := &orchestrator.Orchestrator{
		Client:  githost.NewCLIClient(),
		Planner: buildPlanner(cfg),
		Cfg:     cfg,
	}

	repos := make([]string, len(targets))
	for i, t := range targets {
		repos[i] = t.Repo
	}
	banner.PrintStartupBanner(cfg.AIProvider, cfg.PlannerModel, repos)
	if cfg.DryRun {
		logging.Info("dry-run: plans will be printed but not handed to executors")
	}

	run := orch.RunAll(ctx, targets)

	for _, report := range run.Cycles {
		banner.PrintCycleSummary(report)
		notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel,
			cfg.NotifyChatID, notification.BuildCycleMessage(report))
	}
	banner.PrintRunSummary(run)
	notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel,
		cfg.NotifyChatID, notification.BuildRunMessage(run))

	os.Exit(runExitCode(run))
	return nil // unreachable
}

// buildPlanner assembles the two-strategy planner: the configured AI behind
// retry, wrapped so any failure degrades to the deterministic fallback.
// When the AI CLI is not installed, the fallback plans every cycle.
func buildPlanner(cfg *config.Config) planner.Planner {
	fallback := &planner.Fallback{}

	avail := ai.CheckAvailability(cfg.AIProvider)
	if !avail[cfg.AIProvider] {
		logging.Warn("%s CLI not found, using deterministic fallback planner", cfg.AIProvider)
		return fallback
	}

	var reasoner ai.Reasoner
	if cfg.AIProvider == "claude" {
		reasoner = &ai.ClaudeReasoner{Model: cfg.PlannerModel}
	} else {
		reasoner = &ai.CodexReasoner{Model: cfg.PlannerModel}
	}
	reasoner = &ai.RetryReasoner{
		Inner:    reasoner,
		RetryCfg: ai.RetryConfig{MaxRetries: cfg.MaxPlannerRetry, BaseDelay: 5},
	}

	return &planner.WithFallback{
		Primary: &planner.Strategic{
			Reasoner: reasoner,
			Timeout:  time.Duration(cfg.PlannerTimeout) * time.Second,
		},
		Fallback: fallback,
	}
}

// runExitCode maps the run outcome to a process exit code.
func runExitCode(run *orchestrator.RunReport) int {
	switch {
	case run.Interrupted:
		return exitcode.Interrupted
	case run.Failed() == 0:
		return exitcode.Success
	case run.Succeeded() == 0:
		return exitcode.Error
	default:
		return exitcode.PartialFailure
	}
}
