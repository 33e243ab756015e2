package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CodexForgeBR/triage-loop/internal/ai"
	"github.com/CodexForgeBR/triage-loop/internal/classifier"
	"github.com/CodexForgeBR/triage-loop/internal/logging"
	"github.com/CodexForgeBR/triage-loop/internal/parser"
	"github.com/CodexForgeBR/triage-loop/internal/prompt"
	"github.com/CodexForgeBR/triage-loop/internal/resources"
	"github.com/CodexForgeBR/triage-loop/internal/workload"
)

// Strategic delegates planning to an external reasoning model. Any failure
// (timeout, malformed response, invariant violation) surfaces as an error so
// the composite planner can fall back.
type Strategic struct {
	Reasoner ai.Reasoner

	// Timeout bounds the reasoning call. Zero means no deadline beyond the
	// caller's context.
	Timeout time.Duration
}

// planPayload mirrors the response contract. Workflows is a pointer so a
// response that parses but omits the key is distinguishable from an empty
// work list.
type planPayload struct {
	Strategy          string   `json:"strategy"`
	Workflows         *[]Step  `json:"workflows"`
	SkipWorkflows     []string `json:"skip_workflows"`
	EstimatedAPICalls int      `json:"estimated_api_calls"`
	Warnings          []string `json:"warnings"`
}

// Plan prompts the model, extracts and validates its JSON response.
func (s *Strategic) Plan(ctx context.Context, state classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) (*Plan, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	response, err := s.Reasoner.Reason(ctx, prompt.PlannerSystemPrompt(), prompt.BuildPlanningPrompt(state, res, w))
	if err != nil {
		return nil, fmt.Errorf("strategic planning call: %w", err)
	}

	raw, err := parser.ExtractObject(response)
	if err != nil {
		return nil, &MalformedResponseError{Reason: err.Error()}
	}

	var payload planPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if payload.Workflows == nil {
		return nil, &MalformedResponseError{Reason: "missing workflows field"}
	}

	plan := &Plan{
		Strategy:          payload.Strategy,
		Workflows:         *payload.Workflows,
		SkipWorkflows:     payload.SkipWorkflows,
		EstimatedAPICalls: payload.EstimatedAPICalls,
		Warnings:          payload.Warnings,
	}
	if err := Validate(plan, res); err != nil {
		return nil, fmt.Errorf("strategic plan rejected: %w", err)
	}

	return plan, nil
}

// WithFallback wraps a primary planner so callers never see an error: on
// primary failure the fallback plan is returned with a warning describing
// what went wrong.
type WithFallback struct {
	Primary  Planner
	Fallback Planner
}

// Plan tries the primary planner and degrades to the fallback on failure.
func (p *WithFallback) Plan(ctx context.Context, state classifier.RepoState, res resources.ResourceState, w workload.PrioritizedWorkload) (*Plan, error) {
	plan, err := p.Primary.Plan(ctx, state, res, w)
	if err == nil {
		return plan, nil
	}

	logging.Warn("strategic planning failed, using fallback: %v", err)

	plan, fbErr := p.Fallback.Plan(ctx, state, res, w)
	if fbErr != nil {
		// The deterministic fallback cannot fail; guard anyway.
		return &Plan{
			Strategy:      "no-op",
			SkipWorkflows: []string{WorkflowCreateIssues},
			Warnings:      []string{fmt.Sprintf("fallback planning failed: %v", fbErr)},
		}, nil
	}

	plan.Warnings = append(plan.Warnings,
		fmt.Sprintf("strategic planning failed (%v), used deterministic fallback", err))
	return plan, nil
}
