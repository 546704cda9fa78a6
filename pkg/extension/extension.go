// Package extension defines the Extension interface dispatched by variable
// type during rendering (spec.md §4.8, design note on "dynamic dispatch
// over extensions"). Date/Shell/Script/Random are external collaborators —
// platform-specific side effects out of this module's scope — so only
// Mock and Echo, trivial reference implementations useful for testing the
// render pipeline itself, are provided here.
package extension

import (
	"context"
	"fmt"

	"github.com/expando-dev/expando/pkg/model"
)

// OutputKind tags Output's variant.
type OutputKind int

const (
	OutputSingle OutputKind = iota
	OutputMultiple
)

// Output is an extension's result value: either a single string, or a
// named map of strings accessed via `{{name.sub}}` (spec.md §4.8).
type Output struct {
	Kind     OutputKind
	Single   string
	Multiple map[string]string
}

func Single(s string) Output               { return Output{Kind: OutputSingle, Single: s} }
func Multiple(m map[string]string) Output  { return Output{Kind: OutputMultiple, Multiple: m} }

// AsString resolves a `.sub` accessor (empty string for a top-level access
// of a Single output, matching the renderer's substitution step).
func (o Output) AsString(sub string) (string, bool) {
	if o.Kind == OutputSingle {
		return o.Single, sub == ""
	}
	v, ok := o.Multiple[sub]
	return v, ok
}

// Scope is the running map of already-evaluated variable outputs, keyed by
// Variable.Name, consulted when re-rendering `{{…}}` inside an
// inject_vars param string (spec.md §4.8 step 3).
type Scope map[string]Output

// Status tags a Result's outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusAborted
	StatusError
)

// Result is what an Extension produces for one variable evaluation. Only
// Output is meaningful when Status is StatusSuccess.
type Result struct {
	Status Status
	Output Output
	Err    error
}

func Success(o Output) Result  { return Result{Status: StatusSuccess, Output: o} }
func Aborted() Result          { return Result{Status: StatusAborted} }
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Err: fmt.Errorf(format, args...)}
}

// Extension evaluates one variable type into an Output, given its already
// inject_vars-rendered params and the current scope (spec.md §4.8 step 3).
type Extension interface {
	Type() model.VarType
	Evaluate(ctx context.Context, v model.Variable, scope Scope) Result
}

// Registry dispatches a Variable to the Extension registered for its Type,
// mirroring the teacher's validator Engine's "find the handler, invoke it"
// pattern but keyed by a closed enum instead of a predicate per handler.
type Registry struct {
	extensions map[model.VarType]Extension
}

func NewRegistry(exts ...Extension) *Registry {
	r := &Registry{extensions: make(map[model.VarType]Extension, len(exts))}
	for _, e := range exts {
		r.extensions[e.Type()] = e
	}
	return r
}

// Evaluate dispatches v to its registered Extension. A type with no
// registered Extension — Date/Shell/Script/Random in a core-only build —
// fails with a descriptive error rather than panicking, so the renderer
// can propagate it the same way as any other Extension error.
func (r *Registry) Evaluate(ctx context.Context, v model.Variable, scope Scope) Result {
	ext, ok := r.extensions[v.Type]
	if !ok {
		return Errorf("extension %q is not available in core", v.Type)
	}
	return ext.Evaluate(ctx, v, scope)
}
