package enum

import "time"

// EvalContext carries the inputs for one expression evaluation against a
// single entry snapshot.
type EvalContext struct {
	// Snapshot is the entry view exposed to the expression: name, value,
	// ordinal, definition and strict.
	Snapshot map[string]any
	// Now overrides the evaluation timestamp. Defaults to time.Now.
	Now *time.Time
	// Args are caller-supplied values exposed to the expression.
	Args map[string]any
}

func (ctx EvalContext) withDefaults() EvalContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

func (ctx EvalContext) definitionLabel() string {
	if name, ok := ctx.Snapshot["definition"].(string); ok {
		return name
	}
	return Unknown
}

// Evaluator executes selection expressions against entry snapshots.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

func (d *Definition) snapshotFor(e *Entry, ordinal int) map[string]any {
	return map[string]any{
		"name":       e.String(),
		"value":      e.value,
		"ordinal":    ordinal,
		"definition": d.name,
		"strict":     d.Strict(),
	}
}
