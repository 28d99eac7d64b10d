package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"taskpilot/internal/llm"
	"taskpilot/internal/tools"
)

const (
	minPlanSteps = 2
	maxPlanSteps = 4

	// heuristicPlanCap limits the fallback plan. The knowledge-base step
	// is appended last, so it is only ever dropped when both conditional
	// steps fired first.
	heuristicPlanCap = 3
)

// Planner produces an ordered plan for a task. The strategy is chosen once
// at construction time, not per call.
type Planner interface {
	Plan(ctx context.Context, task string) (PlanPayload, error)
}

// LLMPlanner asks the completion provider for a plan constrained to a JSON
// schema, then re-validates the decoded payload before trusting it.
type LLMPlanner struct {
	provider llm.Provider
	registry *tools.Registry
	logger   *log.Logger
}

func NewLLMPlanner(provider llm.Provider, registry *tools.Registry) *LLMPlanner {
	return &LLMPlanner{
		provider: provider,
		registry: registry,
		logger:   log.New(log.Writer(), "[PLANNER] ", log.LstdFlags),
	}
}

func (p *LLMPlanner) Plan(ctx context.Context, task string) (PlanPayload, error) {
	prompt := p.planningPrompt(task)
	raw, err := p.provider.GenerateJSON(ctx, prompt, "task_plan", planSchema(p.registry.Names()))
	if err != nil {
		return PlanPayload{}, fmt.Errorf("%w: %v", ErrPlanning, err)
	}
	payload, err := parsePlanPayload(raw, p.registry)
	if err != nil {
		return PlanPayload{}, fmt.Errorf("%w: %v", ErrPlanning, err)
	}
	p.logger.Printf("planned %d steps for task", len(payload.Plan))
	return payload, nil
}

func (p *LLMPlanner) planningPrompt(task string) string {
	var catalog strings.Builder
	for _, t := range p.registry.List() {
		fmt.Fprintf(&catalog, "- %s: %s\n", t.Name(), t.Description())
	}
	return fmt.Sprintf(`You are a planning agent. Break the user's task into %d to %d concrete steps, each handled by exactly one of the available tools.

TASK: %s

AVAILABLE TOOLS:
%s
For each step give a short title, a description that will be passed verbatim to the tool as its input, and the tool name. Explain your overall approach in "reasoning".`,
		minPlanSteps, maxPlanSteps, task, catalog.String())
}

// planSchema is the constrained output contract for the planning call: a
// reasoning string plus 2-4 steps whose tool field is limited to the
// registered names.
func planSchema(toolNames []string) map[string]interface{} {
	enum := make([]interface{}, 0, len(toolNames))
	for _, n := range toolNames {
		enum = append(enum, n)
	}
	step := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":          map[string]interface{}{"type": "string"},
			"title":       map[string]interface{}{"type": "string"},
			"description": map[string]interface{}{"type": "string"},
			"tool":        map[string]interface{}{"type": "string", "enum": enum},
		},
		"required":             []interface{}{"id", "title", "description", "tool"},
		"additionalProperties": false,
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"reasoning": map[string]interface{}{"type": "string"},
			"plan": map[string]interface{}{
				"type":     "array",
				"minItems": minPlanSteps,
				"maxItems": maxPlanSteps,
				"items":    step,
			},
		},
		"required":             []interface{}{"reasoning", "plan"},
		"additionalProperties": false,
	}
}

// parsePlanPayload decodes and validates a planning response. Schema
// enforcement on the provider side is not trusted; every bound is checked
// again here.
func parsePlanPayload(raw string, registry *tools.Registry) (PlanPayload, error) {
	var payload PlanPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return PlanPayload{}, fmt.Errorf("decode plan: %v", err)
	}
	if strings.TrimSpace(payload.Reasoning) == "" {
		return PlanPayload{}, fmt.Errorf("plan is missing reasoning")
	}
	if len(payload.Plan) < minPlanSteps || len(payload.Plan) > maxPlanSteps {
		return PlanPayload{}, fmt.Errorf("plan must have between %d and %d steps, got %d", minPlanSteps, maxPlanSteps, len(payload.Plan))
	}
	for i := range payload.Plan {
		step := &payload.Plan[i]
		if _, ok := registry.Get(step.Tool); !ok {
			return PlanPayload{}, fmt.Errorf("step %d names unknown tool %q", i, step.Tool)
		}
		if strings.TrimSpace(step.Title) == "" {
			return PlanPayload{}, fmt.Errorf("step %d is missing a title", i)
		}
		if strings.TrimSpace(step.ID) == "" {
			step.ID = uuid.NewString()
		}
	}
	return payload, nil
}

// Keyword patterns for the heuristic fallback. Partial-word matches are
// intentional: "calculat" covers calculate/calculating/calculation.
var (
	heuristicCalcPattern     = regexp.MustCompile(`(?i)(calculat|comput|math|average|percent|estimat|how much|how many)`)
	heuristicResearchPattern = regexp.MustCompile(`(?i)(research|latest|news|current|recent|today|trend|market size|competitor)`)
)

// HeuristicPlanner builds a plan from keyword matches against the task
// text. It is chosen up front when no LLM credential is configured; it is
// not an on-error fallback.
type HeuristicPlanner struct{}

func NewHeuristicPlanner() *HeuristicPlanner { return &HeuristicPlanner{} }

func (p *HeuristicPlanner) Plan(_ context.Context, task string) (PlanPayload, error) {
	var steps []PlanItem
	if heuristicCalcPattern.MatchString(task) {
		steps = append(steps, PlanItem{
			ID:          uuid.NewString(),
			Title:       "Quantify key numbers",
			Description: "Work out the arithmetic mentioned in the task",
			Tool:        "calculator",
		})
	}
	if heuristicResearchPattern.MatchString(task) {
		steps = append(steps, PlanItem{
			ID:          uuid.NewString(),
			Title:       "Collect live context",
			Description: task,
			Tool:        "search",
		})
	}
	steps = append(steps, PlanItem{
		ID:          uuid.NewString(),
		Title:       "Reference built-in playbooks",
		Description: task,
		Tool:        "knowledge_base",
	})
	if len(steps) > heuristicPlanCap {
		steps = steps[:heuristicPlanCap]
	}
	return PlanPayload{
		Reasoning: "No LLM credential is configured, so this plan was assembled from keyword heuristics over the task text.",
		Plan:      steps,
	}, nil
}
