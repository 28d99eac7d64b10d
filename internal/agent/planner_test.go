package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskpilot/internal/tools"
)

// stubProvider satisfies llm.Provider for tests.
type stubProvider struct {
	jsonResponse string
	textResponse string
	err          error
}

func (s stubProvider) Generate(context.Context, string) (string, error) {
	return s.textResponse, s.err
}

func (s stubProvider) GenerateJSON(context.Context, string, string, map[string]interface{}) (string, error) {
	return s.jsonResponse, s.err
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	return tools.NewRegistry(
		tools.NewSearchTool("http://127.0.0.1:0", "taskpilot-test/1.0", time.Second),
		tools.NewCalculatorTool(),
		tools.NewKnowledgeBaseTool(),
	)
}

func toolSequence(plan []PlanItem) []string {
	out := make([]string, 0, len(plan))
	for _, step := range plan {
		out = append(out, step.Tool)
	}
	return out
}

func TestHeuristicPlannerCalculationTask(t *testing.T) {
	p := NewHeuristicPlanner()
	payload, err := p.Plan(context.Background(), "Calculate the quarterly budget totals")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	plan := payload.Plan
	if len(plan) == 0 || len(plan) > 3 {
		t.Fatalf("expected 1-3 steps, got %d", len(plan))
	}
	if plan[0].Tool != "calculator" {
		t.Fatalf("expected calculator first, got %q", plan[0].Tool)
	}
	if plan[len(plan)-1].Tool != "knowledge_base" {
		t.Fatalf("expected knowledge_base last, got %q", plan[len(plan)-1].Tool)
	}
}

func TestHeuristicPlannerNeutralTask(t *testing.T) {
	p := NewHeuristicPlanner()
	payload, err := p.Plan(context.Background(), "Plan a product launch")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(payload.Plan) != 1 {
		t.Fatalf("expected a single step, got %d", len(payload.Plan))
	}
	if payload.Plan[0].Tool != "knowledge_base" {
		t.Fatalf("expected knowledge_base, got %q", payload.Plan[0].Tool)
	}
	if payload.Reasoning == "" {
		t.Fatalf("expected heuristic reasoning text")
	}
}

func TestHeuristicPlannerBothKeywordClasses(t *testing.T) {
	p := NewHeuristicPlanner()
	payload, err := p.Plan(context.Background(), "Research the latest market trends and calculate growth")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	got := toolSequence(payload.Plan)
	want := []string{"calculator", "search", "knowledge_base"}
	if len(got) != len(want) {
		t.Fatalf("expected 3 steps, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestHeuristicPlannerIdempotent(t *testing.T) {
	p := NewHeuristicPlanner()
	task := "Compute the average order value"
	first, err := p.Plan(context.Background(), task)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	second, err := p.Plan(context.Background(), task)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	a, b := toolSequence(first.Plan), toolSequence(second.Plan)
	if len(a) != len(b) {
		t.Fatalf("step counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tool sequences differ: %v vs %v", a, b)
		}
	}
}

func TestLLMPlannerParsesValidPayload(t *testing.T) {
	reg := testRegistry(t)
	raw := `{"reasoning":"search then summarize","plan":[
		{"id":"","title":"Find context","description":"golang schedulers","tool":"search"},
		{"id":"s2","title":"Check playbooks","description":"golang","tool":"knowledge_base"}
	]}`
	p := NewLLMPlanner(stubProvider{jsonResponse: raw}, reg)
	payload, err := p.Plan(context.Background(), "Explain golang schedulers")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(payload.Plan) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(payload.Plan))
	}
	if payload.Plan[0].ID == "" {
		t.Fatalf("expected blank step id to be filled in")
	}
	if payload.Plan[1].ID != "s2" {
		t.Fatalf("expected provided id to be kept, got %q", payload.Plan[1].ID)
	}
}

func TestLLMPlannerRejectsBadPayloads(t *testing.T) {
	reg := testRegistry(t)
	cases := map[string]string{
		"not json":     `steps: search, summarize`,
		"no reasoning": `{"reasoning":"","plan":[{"id":"a","title":"t","description":"d","tool":"search"},{"id":"b","title":"t","description":"d","tool":"search"}]}`,
		"too short":    `{"reasoning":"r","plan":[{"id":"a","title":"t","description":"d","tool":"search"}]}`,
		"too long":     `{"reasoning":"r","plan":[{"id":"a","title":"t","description":"d","tool":"search"},{"id":"b","title":"t","description":"d","tool":"search"},{"id":"c","title":"t","description":"d","tool":"search"},{"id":"d","title":"t","description":"d","tool":"search"},{"id":"e","title":"t","description":"d","tool":"search"}]}`,
		"unknown tool": `{"reasoning":"r","plan":[{"id":"a","title":"t","description":"d","tool":"search"},{"id":"b","title":"t","description":"d","tool":"warp_drive"}]}`,
	}
	for name, raw := range cases {
		p := NewLLMPlanner(stubProvider{jsonResponse: raw}, reg)
		if _, err := p.Plan(context.Background(), "task"); err == nil {
			t.Fatalf("%s: expected planning failure", name)
		} else if !strings.Contains(err.Error(), "planning failed") {
			t.Fatalf("%s: expected planning failure class, got %v", name, err)
		}
	}
}

func TestLLMPlannerPropagatesProviderError(t *testing.T) {
	reg := testRegistry(t)
	p := NewLLMPlanner(stubProvider{err: context.DeadlineExceeded}, reg)
	if _, err := p.Plan(context.Background(), "task"); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}
