package agent

import (
	"errors"
	"time"

	"taskpilot/internal/tools"
)

// Run-aborting failure classes. Tool-level failures never reach these;
// they are captured per step inside ToolExecution records.
var (
	ErrPlanning = errors.New("planning failed")
	ErrSummary  = errors.New("summary failed")
)

// PlanItem is one step of a plan, bound to exactly one tool by name. The
// name is not validated before execution; an unknown name surfaces as a
// failed execution record.
type PlanItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tool        string `json:"tool"`
}

// PlanPayload is the planner's output. Order is significant: steps execute
// strictly in the given sequence.
type PlanPayload struct {
	Reasoning string     `json:"reasoning"`
	Plan      []PlanItem `json:"plan"`
}

// RunMeta carries timing for one task run.
type RunMeta struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// AgentOutcome is the aggregate result of one task run. It is built once
// per request, returned directly as the response body, and never persisted.
//
// On the heuristic fallback path Success is true while Error still carries
// an informational note about the missing credential; that combination is
// part of the contract, not a bug.
type AgentOutcome struct {
	Success   bool                  `json:"success"`
	Plan      []PlanItem            `json:"plan"`
	Steps     []tools.ToolExecution `json:"steps"`
	Final     string                `json:"final"`
	Reasoning string                `json:"reasoning"`
	Meta      RunMeta               `json:"meta"`
	Error     string                `json:"error,omitempty"`
}

// NewFailedOutcome builds an outcome for a run that aborted before
// producing a plan.
func NewFailedOutcome(started time.Time, msg string) AgentOutcome {
	completed := time.Now()
	return AgentOutcome{
		Success: false,
		Plan:    []PlanItem{},
		Steps:   []tools.ToolExecution{},
		Meta:    newRunMeta(started, completed),
		Error:   msg,
	}
}

func newRunMeta(started, completed time.Time) RunMeta {
	return RunMeta{
		StartedAt:   started,
		CompletedAt: completed,
		DurationMs:  completed.Sub(started).Milliseconds(),
	}
}
