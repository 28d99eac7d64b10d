package tools

import (
	"context"
	"strings"
	"testing"
)

func TestKnowledgeBaseFindsAgenticDoc(t *testing.T) {
	kb := NewKnowledgeBaseTool()
	rec := kb.Execute(context.Background(), "agentic ai", ToolContext{})
	if !rec.Success {
		t.Fatalf("knowledge base must not fail, got %q", rec.Error)
	}
	if !strings.Contains(rec.Output, "Agentic AI definition") {
		t.Fatalf("expected the Agentic AI definition doc, got %q", rec.Output)
	}
	if !strings.HasPrefix(rec.Output, "• ") {
		t.Fatalf("expected bulleted snippet rendering, got %q", rec.Output)
	}
}

func TestKnowledgeBaseNoMatch(t *testing.T) {
	kb := NewKnowledgeBaseTool()
	rec := kb.Execute(context.Background(), "zzyyxx", ToolContext{})
	if !rec.Success {
		t.Fatalf("knowledge base must not fail, got %q", rec.Error)
	}
	if rec.Output != "No relevant knowledge snippets found." {
		t.Fatalf("expected the no-match literal, got %q", rec.Output)
	}
}

func TestKnowledgeBaseKeepsTopTwo(t *testing.T) {
	kb := NewKnowledgeBaseTool()
	// "a" and "the" are substrings of nearly every document; still only two
	// snippets may come back.
	rec := kb.Execute(context.Background(), "a the launch research summary numbers", ToolContext{})
	if !rec.Success {
		t.Fatalf("knowledge base must not fail, got %q", rec.Error)
	}
	if got := len(strings.Split(rec.Output, "\n")); got > 2 {
		t.Fatalf("expected at most 2 snippets, got %d: %q", got, rec.Output)
	}
}

func TestKnowledgeBaseFallsBackToTask(t *testing.T) {
	kb := NewKnowledgeBaseTool()
	rec := kb.Execute(context.Background(), "  ", ToolContext{Task: "agentic ai systems"})
	if !rec.Success {
		t.Fatalf("knowledge base must not fail, got %q", rec.Error)
	}
	if !strings.Contains(rec.Output, "Agentic AI definition") {
		t.Fatalf("expected task fallback to drive the lookup, got %q", rec.Output)
	}
	if rec.Input != "agentic ai systems" {
		t.Fatalf("expected recorded input to be the task, got %q", rec.Input)
	}
}
