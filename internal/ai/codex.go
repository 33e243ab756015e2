package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CodexReasoner implements Reasoner for the codex CLI.
type CodexReasoner struct {
	Model string
}

// BuildArgs constructs the argument list for the codex CLI command.
// Codex has no separate system-prompt flag, so the system prompt is
// prepended to the user prompt by Reason.
func (r *CodexReasoner) BuildArgs() []string {
	args := []string{"exec", "--skip-git-repo-check"}
	if r.Model != "" {
		args = append(args, "--model", r.Model)
	}
	return args
}

// Reason executes the codex CLI and returns its stdout.
func (r *CodexReasoner) Reason(ctx context.Context, system, prompt string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	cmd := exec.CommandContext(ctx, "codex", r.BuildArgs()...)
	cmd.Stdin = strings.NewReader(full)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("codex command: %w", ctx.Err())
		}
		return "", fmt.Errorf("codex command failed: %w: %s",
			err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
