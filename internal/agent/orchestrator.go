package agent

import (
	"context"
	"log"
	"time"

	"taskpilot/config"
	"taskpilot/internal/llm"
	"taskpilot/internal/telemetry"
	"taskpilot/internal/tools"
)

// FallbackNotice is carried in the outcome's error field on the heuristic
// path. The outcome still reports success; the note only explains the
// capability downgrade.
const FallbackNotice = "LLM API key not configured; planning and summarizing used the built-in heuristic fallback."

// Orchestrator drives one task through planning, execution and
// summarizing. The planner and summarizer strategies are fixed at
// construction: LLM-backed when a credential is configured, heuristic and
// static otherwise.
type Orchestrator struct {
	planner    Planner
	executor   *Executor
	summarizer Summarizer
	telemetry  *telemetry.Telemetry
	logger     *log.Logger

	// fallbackNotice is non-empty on the heuristic path.
	fallbackNotice string
}

// NewOrchestrator wires the pipeline from configuration.
func NewOrchestrator(cfg *config.Config, registry *tools.Registry, tele *telemetry.Telemetry) *Orchestrator {
	o := &Orchestrator{
		executor:  NewExecutor(registry, tele),
		telemetry: tele,
		logger:    log.New(log.Writer(), "[ORCH] ", log.LstdFlags),
	}
	if cfg.LLM.APIKey == "" {
		o.planner = NewHeuristicPlanner()
		o.summarizer = NewStaticSummarizer()
		o.fallbackNotice = FallbackNotice
		o.logger.Printf("no LLM credential configured, using heuristic planner and static summarizer")
		return o
	}
	provider := llm.NewOpenAIProvider(cfg.LLM)
	o.planner = NewLLMPlanner(provider, registry)
	o.summarizer = NewLLMSummarizer(provider)
	return o
}

// NewOrchestratorWithStrategies wires the pipeline from explicit parts.
// fallbackNotice should be empty unless the heuristic strategies are in
// use.
func NewOrchestratorWithStrategies(planner Planner, executor *Executor, summarizer Summarizer, tele *telemetry.Telemetry, fallbackNotice string) *Orchestrator {
	return &Orchestrator{
		planner:        planner,
		executor:       executor,
		summarizer:     summarizer,
		telemetry:      tele,
		logger:         log.New(log.Writer(), "[ORCH] ", log.LstdFlags),
		fallbackNotice: fallbackNotice,
	}
}

// Run processes one task end to end and always returns a well-formed
// outcome. Planning or summarizing failures abort the run with
// success=false; tool failures stay inside their step records.
func (o *Orchestrator) Run(ctx context.Context, task string) AgentOutcome {
	started := time.Now()

	plan, err := o.planner.Plan(ctx, task)
	if err != nil {
		o.logger.Printf("run failed: %v", err)
		outcome := NewFailedOutcome(started, err.Error())
		o.telemetry.RecordRun(false, time.Since(started))
		return outcome
	}

	steps := o.executor.Execute(ctx, plan.Plan, task)

	final, err := o.summarizer.Summarize(ctx, task, plan, steps)
	if err != nil {
		o.logger.Printf("run failed: %v", err)
		outcome := NewFailedOutcome(started, err.Error())
		o.telemetry.RecordRun(false, time.Since(started))
		return outcome
	}

	completed := time.Now()
	o.telemetry.RecordRun(true, completed.Sub(started))
	o.logger.Printf("run completed in %v with %d steps", completed.Sub(started), len(steps))
	return AgentOutcome{
		Success:   true,
		Plan:      plan.Plan,
		Steps:     steps,
		Final:     final,
		Reasoning: plan.Reasoning,
		Meta:      newRunMeta(started, completed),
		Error:     o.fallbackNotice,
	}
}
