package enum

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoEvaluator indicates that no evaluator could be resolved for Select.
var ErrNoEvaluator = errors.New("enum: evaluator not configured")

type selectConfig struct {
	evaluator Evaluator
	cache     ProgramCache
	functions *FunctionRegistry
	logger    EvaluatorLogger
	args      map[string]any
}

// SelectOption configures a single Select call.
type SelectOption func(*selectConfig)

// SelectWith runs the selection through a specific evaluator instead of the
// default expr engine.
func SelectWith(evaluator Evaluator) SelectOption {
	return func(cfg *selectConfig) {
		cfg.evaluator = evaluator
	}
}

// SelectCache reuses compiled programs across Select calls.
func SelectCache(cache ProgramCache) SelectOption {
	return func(cfg *selectConfig) {
		cfg.cache = cache
	}
}

// SelectFunctions exposes custom helper functions to the expression.
func SelectFunctions(registry *FunctionRegistry) SelectOption {
	return func(cfg *selectConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// SelectLogger records the evaluation batch.
func SelectLogger(logger EvaluatorLogger) SelectOption {
	return func(cfg *selectConfig) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SelectArgs exposes caller-supplied values to the expression under "args".
func SelectArgs(args map[string]any) SelectOption {
	return func(cfg *selectConfig) {
		cfg.args = args
	}
}

// Select returns the entries, in registration order, for which expression
// evaluates to true. The expression sees name, value, ordinal, definition and
// strict per entry, plus now and args. It must yield a boolean for every
// entry; anything else fails the whole call.
func (d *Definition) Select(expression string, opts ...SelectOption) ([]*Entry, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("select", fmt.Errorf("expression must not be empty"))
	}
	cfg := selectConfig{logger: noopEvaluatorLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	evaluator := cfg.evaluator
	if evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if cfg.cache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(cfg.cache))
		}
		if cfg.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
		}
		evaluator = NewExprEvaluator(exprOpts...)
	}
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}

	engine := evaluatorEngineName(evaluator)
	rule, err := evaluator.Compile(expression)
	if err != nil {
		err = wrapEvaluationError(engine, expression, d.name, err)
		cfg.logger.LogEvaluation(EvaluatorLogEvent{
			Engine:     engine,
			Expr:       expression,
			Definition: d.name,
			Err:        err,
		})
		return nil, err
	}

	entries := d.All()
	matched := make([]*Entry, 0, len(entries))
	start := time.Now()
	for i, e := range entries {
		ctx := EvalContext{
			Snapshot: d.snapshotFor(e, i),
			Args:     cfg.args,
		}
		out, evalErr := rule.Evaluate(ctx)
		if evalErr == nil {
			if keep, ok := out.(bool); ok {
				if keep {
					matched = append(matched, e)
				}
				continue
			}
			evalErr = fmt.Errorf("expression must evaluate to a boolean, got %T", out)
		}
		evalErr = wrapEvaluationError(engine, expression, d.name, evalErr)
		cfg.logger.LogEvaluation(EvaluatorLogEvent{
			Engine:     engine,
			Expr:       expression,
			Definition: d.name,
			Evaluated:  i + 1,
			Matched:    len(matched),
			Duration:   time.Since(start),
			Err:        evalErr,
		})
		return nil, evalErr
	}

	cfg.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:     engine,
		Expr:       expression,
		Definition: d.name,
		Evaluated:  len(entries),
		Matched:    len(matched),
		Duration:   time.Since(start),
	})
	return matched, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return Unknown
	}
	switch fmt.Sprintf("%T", e) {
	case "*enum.exprEvaluator":
		return "expr"
	case "*enum.celEvaluator":
		return "cel"
	case "*enum.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
