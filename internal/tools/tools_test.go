package tools

import (
	"testing"
	"time"
)

func newTestRegistry() *Registry {
	return NewRegistry(
		NewSearchTool("http://127.0.0.1:0", "taskpilot-test/1.0", time.Second),
		NewCalculatorTool(),
		NewKnowledgeBaseTool(),
	)
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	reg := newTestRegistry()
	for _, name := range []string{"calculator", "Calculator", "CALCULATOR", " calculator "} {
		if _, ok := reg.Get(name); !ok {
			t.Fatalf("expected lookup to succeed for %q", name)
		}
	}
	if _, ok := reg.Get("time_machine"); ok {
		t.Fatalf("expected lookup to fail for unregistered tool")
	}
}

func TestRegistryListKeepsRegistrationOrder(t *testing.T) {
	reg := newTestRegistry()
	want := []string{"search", "calculator", "knowledge_base"}
	names := reg.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %q at position %d, got %q", name, i, names[i])
		}
		if reg.List()[i].Name() != name {
			t.Fatalf("List order diverges from Names at %d", i)
		}
	}
}
