// Package ai runs external AI CLI tools for strategic reasoning.
//
// Tools are invoked one-shot: system prompt and user prompt in, a single
// text response out. Callers bound invocations with a context deadline.
package ai

import "context"

// Reasoner is the interface for one-shot strategic reasoning calls.
type Reasoner interface {
	// Reason sends the prompts to the AI tool and returns its raw text
	// response. Honors ctx cancellation and deadlines.
	Reason(ctx context.Context, system, prompt string) (string, error)
}
