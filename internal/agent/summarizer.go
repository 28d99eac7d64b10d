package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"taskpilot/internal/llm"
	"taskpilot/internal/tools"
)

// FallbackFinal is the fixed answer used when no LLM credential is
// configured and the summarizing call is skipped entirely.
const FallbackFinal = "Live LLM reasoning is unavailable because no API key is configured. Use the generated plan and tool output below as a starting point."

// Summarizer turns the task, plan and execution records into the final
// answer text.
type Summarizer interface {
	Summarize(ctx context.Context, task string, plan PlanPayload, steps []tools.ToolExecution) (string, error)
}

// LLMSummarizer asks the completion provider for a free-text synthesis.
type LLMSummarizer struct {
	provider llm.Provider
}

func NewLLMSummarizer(provider llm.Provider) *LLMSummarizer {
	return &LLMSummarizer{provider: provider}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, task string, plan PlanPayload, steps []tools.ToolExecution) (string, error) {
	payload, err := json.MarshalIndent(map[string]interface{}{
		"task":       task,
		"plan":       plan.Plan,
		"executions": steps,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummary, err)
	}
	prompt := fmt.Sprintf(`You are a synthesis agent. A task was planned and each plan step was executed against a tool. Combine the results below into a concise, actionable answer for the user. Mention tool failures only if they matter for the answer.

%s`, payload)
	final, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummary, err)
	}
	return final, nil
}

// StaticSummarizer skips the upstream call and returns the fixed fallback
// sentence.
type StaticSummarizer struct{}

func NewStaticSummarizer() *StaticSummarizer { return &StaticSummarizer{} }

func (s *StaticSummarizer) Summarize(context.Context, string, PlanPayload, []tools.ToolExecution) (string, error) {
	return FallbackFinal, nil
}
