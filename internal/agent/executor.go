package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"taskpilot/internal/telemetry"
	"taskpilot/internal/tools"
)

// Executor runs a plan's steps strictly in order, producing one execution
// record per step. A step naming an unknown tool becomes a failed record;
// it never aborts the rest of the plan. Steps do not see each other's
// output: each gets only its own description and the original task.
type Executor struct {
	registry  *tools.Registry
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

func NewExecutor(registry *tools.Registry, tele *telemetry.Telemetry) *Executor {
	return &Executor{
		registry:  registry,
		telemetry: tele,
		logger:    log.New(log.Writer(), "[EXECUTOR] ", log.LstdFlags),
	}
}

func (e *Executor) Execute(ctx context.Context, plan []PlanItem, task string) []tools.ToolExecution {
	records := make([]tools.ToolExecution, 0, len(plan))
	tctx := tools.ToolContext{Task: task}
	for _, step := range plan {
		tool, ok := e.registry.Get(step.Tool)
		if !ok {
			e.logger.Printf("step %q names unregistered tool %q", step.Title, step.Tool)
			records = append(records, tools.ToolExecution{
				ID:      uuid.NewString(),
				Tool:    step.Tool,
				Input:   step.Description,
				Success: false,
				Error:   fmt.Sprintf("%v: %q", tools.ErrUnregisteredTool, step.Tool),
			})
			e.telemetry.RecordToolExecution(step.Tool, false)
			continue
		}
		rec := tool.Execute(ctx, step.Description, tctx)
		e.telemetry.RecordToolExecution(rec.Tool, rec.Success)
		records = append(records, rec)
	}
	return records
}
