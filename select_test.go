package enum

import (
	"errors"
	"testing"
)

var selectEngines = []struct {
	name string
	new  func(cache ProgramCache, registry *FunctionRegistry) Evaluator
}{
	{
		name: "expr",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []ExprEvaluatorOption{}
			if cache != nil {
				opts = append(opts, ExprWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, ExprWithFunctionRegistry(registry))
			}
			return NewExprEvaluator(opts...)
		},
	},
	{
		name: "cel",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []CELEvaluatorOption{}
			if cache != nil {
				opts = append(opts, CELWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, CELWithFunctionRegistry(registry))
			}
			return NewCELEvaluator(opts...)
		},
	},
	{
		name: "js",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []JSEvaluatorOption{}
			if cache != nil {
				opts = append(opts, JSWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, JSWithFunctionRegistry(registry))
			}
			return NewJSEvaluator(opts...)
		},
	},
}

func engineEvaluator(t *testing.T, name string, cache ProgramCache, registry *FunctionRegistry) Evaluator {
	t.Helper()
	if name == "js" && !jsEvaluatorAvailable() {
		t.Skip("js evaluator requires the js_eval build tag")
	}
	for _, engine := range selectEngines {
		if engine.name == name {
			return engine.new(cache, registry)
		}
	}
	t.Fatalf("unknown engine %q", name)
	return nil
}

func TestSelectByValue(t *testing.T) {
	for _, engine := range selectEngines {
		engine := engine
		t.Run(engine.name, func(t *testing.T) {
			d := newStatus(t)
			evaluator := engineEvaluator(t, engine.name, nil, nil)

			entries, err := d.Select("value >= 1", SelectWith(evaluator))
			if err != nil {
				t.Fatalf("unexpected error from Select: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
			if entries[0].String() != "published" || entries[1].String() != "archived" {
				t.Fatalf("expected registration order, got %v, %v", entries[0], entries[1])
			}
		})
	}
}

func TestSelectByName(t *testing.T) {
	for _, engine := range selectEngines {
		engine := engine
		t.Run(engine.name, func(t *testing.T) {
			d := newStatus(t)
			evaluator := engineEvaluator(t, engine.name, nil, nil)

			entries, err := d.Select(`name == "draft"`, SelectWith(evaluator))
			if err != nil {
				t.Fatalf("unexpected error from Select: %v", err)
			}
			if len(entries) != 1 || entries[0].Value() != 0 {
				t.Fatalf("expected the draft entry, got %v", entries)
			}
		})
	}
}

func TestSelectRequiresBoolean(t *testing.T) {
	for _, engine := range selectEngines {
		engine := engine
		t.Run(engine.name, func(t *testing.T) {
			d := newStatus(t)
			evaluator := engineEvaluator(t, engine.name, nil, nil)

			_, err := d.Select("value", SelectWith(evaluator))
			if err == nil {
				t.Fatalf("expected error for non-boolean expression")
			}
			var evalErr *EvaluationError
			if !errors.As(err, &evalErr) {
				t.Fatalf("expected an EvaluationError, got %v", err)
			}
			if evalErr.Definition != "content.Status" {
				t.Fatalf("expected error to name the definition, got %q", evalErr.Definition)
			}
		})
	}
}

func TestSelectDefaultsToExpr(t *testing.T) {
	d := newStatus(t)

	entries, err := d.Select("value == 0")
	if err != nil {
		t.Fatalf("unexpected error from Select: %v", err)
	}
	if len(entries) != 1 || entries[0].String() != "draft" {
		t.Fatalf("expected the draft entry, got %v", entries)
	}
}

func TestSelectEmptyExpression(t *testing.T) {
	d := newStatus(t)
	if _, err := d.Select(""); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestSelectArgs(t *testing.T) {
	d := newStatus(t)

	entries, err := d.Select(`value >= args["min"]`, SelectArgs(map[string]any{"min": 2}))
	if err != nil {
		t.Fatalf("unexpected error from Select: %v", err)
	}
	if len(entries) != 1 || entries[0].String() != "archived" {
		t.Fatalf("expected the archived entry, got %v", entries)
	}
}

func TestSelectFunctions(t *testing.T) {
	registry := NewFunctionRegistry()
	err := registry.Register("isEven", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("isEven expects one argument")
		}
		n, ok := args[0].(int)
		if !ok {
			return nil, errors.New("isEven expects an int")
		}
		return n%2 == 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error registering function: %v", err)
	}

	d := newStatus(t)
	entries, err := d.Select("isEven(value)", SelectFunctions(registry))
	if err != nil {
		t.Fatalf("unexpected error from Select: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected draft and archived, got %v", entries)
	}
}

func TestSelectLogger(t *testing.T) {
	d := newStatus(t)

	var events []EvaluatorLogEvent
	logger := EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		events = append(events, event)
	})

	if _, err := d.Select("value >= 1", SelectLogger(logger)); err != nil {
		t.Fatalf("unexpected error from Select: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one log event, got %d", len(events))
	}
	event := events[0]
	if event.Engine != "expr" || event.Definition != "content.Status" {
		t.Fatalf("unexpected event metadata: %+v", event)
	}
	if event.Evaluated != 3 || event.Matched != 2 {
		t.Fatalf("expected 3 evaluated and 2 matched, got %+v", event)
	}
	if event.Err != nil {
		t.Fatalf("expected no error on the event, got %v", event.Err)
	}
}

func TestSelectCache(t *testing.T) {
	d := newStatus(t)
	cache := NewMemoryCache()

	for range 3 {
		if _, err := d.Select("value >= 1", SelectCache(cache)); err != nil {
			t.Fatalf("unexpected error from Select: %v", err)
		}
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached program, got %d", cache.Len())
	}
}

type capturingEvaluator struct {
	contexts []EvalContext
}

func (c *capturingEvaluator) Evaluate(ctx EvalContext, expr string) (any, error) {
	c.contexts = append(c.contexts, ctx)
	return true, nil
}

func (c *capturingEvaluator) Compile(expr string) (CompiledRule, error) {
	return capturingRule{evaluator: c}, nil
}

type capturingRule struct {
	evaluator *capturingEvaluator
}

func (r capturingRule) Evaluate(ctx EvalContext) (any, error) {
	return r.evaluator.Evaluate(ctx, "")
}

func TestSelectSnapshots(t *testing.T) {
	d := newStatus(t)
	capture := &capturingEvaluator{}

	entries, err := d.Select("anything", SelectWith(capture))
	if err != nil {
		t.Fatalf("unexpected error from Select: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected every entry to match, got %d", len(entries))
	}
	if len(capture.contexts) != 3 {
		t.Fatalf("expected 3 evaluations, got %d", len(capture.contexts))
	}
	first := capture.contexts[0].Snapshot
	if first["name"] != "draft" || first["value"] != 0 || first["ordinal"] != 0 {
		t.Fatalf("unexpected snapshot: %v", first)
	}
	if first["definition"] != "content.Status" || first["strict"] != false {
		t.Fatalf("unexpected snapshot metadata: %v", first)
	}
}
