package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Only digits, basic operators, parentheses, percent, caret and whitespace
// may reach the evaluator. Anything else is rejected before parsing.
var calculatorWhitelist = regexp.MustCompile(`^[0-9+\-*/().%\s^]+$`)

// CalculatorTool validates and evaluates an arithmetic expression.
type CalculatorTool struct{}

func NewCalculatorTool() *CalculatorTool { return &CalculatorTool{} }

func (t *CalculatorTool) Name() string { return "calculator" }

func (t *CalculatorTool) Description() string {
	return "Evaluates an arithmetic expression (numbers, + - * / % ^ and parentheses) and returns the numeric result."
}

func (t *CalculatorTool) Execute(_ context.Context, input string, _ ToolContext) ToolExecution {
	expr := strings.TrimSpace(input)
	if expr == "" {
		return failed(t.Name(), input, fmt.Errorf("%w: an arithmetic expression is required", ErrMissingInput))
	}
	if !calculatorWhitelist.MatchString(expr) {
		return failed(t.Name(), expr, fmt.Errorf("%w: only digits, + - * / %% ^ . ( ) and whitespace are allowed", ErrUnsafeExpression))
	}
	v, err := evalExpression(expr)
	if err != nil {
		return failed(t.Name(), expr, err)
	}
	return succeeded(t.Name(), expr, fmt.Sprintf("Result: %s", formatResult(v)))
}
