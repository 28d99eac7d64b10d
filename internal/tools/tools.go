package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Tool failure classes surfaced through ToolExecution.Error.
var (
	ErrMissingInput     = errors.New("missing input")
	ErrUnsafeExpression = errors.New("unsupported characters in expression")
	ErrUnregisteredTool = errors.New("unregistered tool")
)

// ToolContext carries per-run metadata into a tool invocation. Tools fall
// back to the original task text when a step's own input is empty.
type ToolContext struct {
	Task string
}

// ToolExecution is the structured result of one tool invocation. Error is
// populated if and only if Success is false.
type ToolExecution struct {
	ID      string `json:"id"`
	Tool    string `json:"tool"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Tool is a named, stateless capability. Execute never returns a Go error;
// failures are captured in the returned ToolExecution so a plan can keep
// going past a broken step.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input string, tctx ToolContext) ToolExecution
}

func succeeded(tool, input, output string) ToolExecution {
	return ToolExecution{
		ID:      uuid.NewString(),
		Tool:    tool,
		Input:   input,
		Output:  output,
		Success: true,
	}
}

func failed(tool, input string, err error) ToolExecution {
	return ToolExecution{
		ID:      uuid.NewString(),
		Tool:    tool,
		Input:   input,
		Success: false,
		Error:   err.Error(),
	}
}

// Registry is a fixed lookup table of tools, built once at startup and
// never mutated afterwards. Safe for unsynchronized concurrent reads.
type Registry struct {
	order  []string
	byName map[string]Tool
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		key := strings.ToLower(t.Name())
		if _, dup := r.byName[key]; dup {
			continue
		}
		r.order = append(r.order, key)
		r.byName[key] = t
	}
	return r
}

// Get looks a tool up by name, case-insensitively.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
