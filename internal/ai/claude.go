package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ClaudeReasoner implements Reasoner for the claude CLI.
type ClaudeReasoner struct {
	Model string
}

// BuildArgs constructs the argument list for the claude CLI command.
// The user prompt is passed on stdin.
func (r *ClaudeReasoner) BuildArgs(system string) []string {
	args := []string{"--print"}
	if r.Model != "" {
		args = append(args, "--model", r.Model)
	}
	if system != "" {
		args = append(args, "--append-system-prompt", system)
	}
	return args
}

// Reason executes the claude CLI and returns its stdout.
func (r *ClaudeReasoner) Reason(ctx context.Context, system, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, "claude", r.BuildArgs(system)...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("claude command: %w", ctx.Err())
		}
		return "", fmt.Errorf("claude command failed: %w: %s",
			err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
