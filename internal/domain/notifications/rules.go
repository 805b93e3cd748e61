package notifications

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/pkg/logger"
)

// RuleInput is the variable set exposed to alert rule expressions.
type RuleInput struct {
	ProductID         id.ID
	ProductName       string
	StockQty          int64
	AlertQty          int64
	AvgMonthlySales   float64
	DemandVariability float64
	ReorderPoint      float64
}

// Rule is an operator-defined alert condition compiled from a CEL
// expression. Example: "stock_qty < reorder_point && demand_variability > 0.5".
type Rule struct {
	Name       string
	Expression string
	Message    string

	program cel.Program
}

// RuleEngine compiles and evaluates custom alert rules.
type RuleEngine struct {
	env *cel.Env

	mu    sync.RWMutex
	rules []*Rule
}

// NewRuleEngine creates the engine with the rule variable declarations.
func NewRuleEngine() (*RuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("product_name", cel.StringType),
		cel.Variable("stock_qty", cel.IntType),
		cel.Variable("alert_qty", cel.IntType),
		cel.Variable("avg_monthly_sales", cel.DoubleType),
		cel.Variable("demand_variability", cel.DoubleType),
		cel.Variable("reorder_point", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	return &RuleEngine{env: env}, nil
}

// AddRule compiles and registers a rule. Invalid expressions are rejected
// here, never at evaluation time.
func (e *RuleEngine) AddRule(name, expression, message string) error {
	if name == "" || expression == "" {
		return apperror.NewValidation("rule name and expression are required")
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return apperror.NewValidation("invalid rule expression").
			WithDetail("rule", name).
			WithDetail("error", issues.Err().Error())
	}

	if ast.OutputType() != cel.BoolType {
		return apperror.NewValidation("rule expression must evaluate to a boolean").
			WithDetail("rule", name)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return apperror.NewValidation("rule expression cannot be evaluated").
			WithDetail("rule", name).
			WithDetail("error", err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, &Rule{
		Name:       name,
		Expression: expression,
		Message:    message,
		program:    program,
	})
	return nil
}

// Rules returns the registered rules.
func (e *RuleEngine) Rules() []*Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate runs all rules against the input and returns notifications for
// rules that fired. Evaluation errors are logged and skipped; a broken
// rule must not block the pipeline.
func (e *RuleEngine) Evaluate(ctx context.Context, in RuleInput) []*Notification {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	vars := map[string]any{
		"product_name":       in.ProductName,
		"stock_qty":          in.StockQty,
		"alert_qty":          in.AlertQty,
		"avg_monthly_sales":  in.AvgMonthlySales,
		"demand_variability": in.DemandVariability,
		"reorder_point":      in.ReorderPoint,
	}

	var fired []*Notification
	for _, rule := range rules {
		out, _, err := rule.program.Eval(vars)
		if err != nil {
			logger.Warn(ctx, "alert rule evaluation failed", "rule", rule.Name, "error", err)
			continue
		}

		matched, ok := out.Value().(bool)
		if !ok || !matched {
			continue
		}

		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("%s matched rule %s", in.ProductName, rule.Name)
		}
		fired = append(fired, NewRuleAlert(in.ProductID, rule.Name, msg))
	}
	return fired
}
