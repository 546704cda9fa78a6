// Package render implements C10: evaluating a TextEffect's variable graph
// in order, substituting results into the body, unescaping literal braces,
// and applying the dispatch-time casing transform (spec.md §4.8).
package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/vargraph"
)

// Context is the read-only environment a render runs against: other
// matches a Match-typed variable can recurse into, and global variables
// visible to every template (spec.md §4.8). MatchesMap is keyed by the
// trigger literal a Match-typed variable's "trigger" param names.
type Context struct {
	MatchesMap    map[string]*model.TriggerMatch
	GlobalVarsMap map[string]model.Variable
}

// Options configures one render call.
type Options struct {
	CasingStyle Style
}

// Outcome tags a Result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeAborted
	OutcomeError
)

// Result is what one Render call produces. Text is meaningful only when
// Outcome is OutcomeSuccess.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

var substitutionPattern = regexp.MustCompile(`\{\{\s*(\w+)(?:\.(\w+))?\s*\}\}`)

// Render evaluates effect against rc using registry to dispatch every
// non-Match, non-Form variable it depends on.
func Render(ctx context.Context, effect model.TextEffect, rc Context, opts Options, registry *extension.Registry) Result {
	if !strings.Contains(effect.Body, "{{") {
		return Result{Outcome: OutcomeSuccess, Text: finish(effect.Body, opts)}
	}

	locals := make(map[string]model.Variable, len(effect.Vars))
	for _, v := range effect.Vars {
		locals[v.Name] = v
	}

	order, err := vargraph.Resolve(effect.Body, locals, rc.GlobalVarsMap)
	if err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}

	scope := extension.Scope{}
	for _, v := range order {
		switch v.Type {
		case model.VarMatch:
			res := evaluateMatch(ctx, v, rc, opts, registry)
			if res.Outcome != OutcomeSuccess {
				return res
			}
			scope[v.Name] = extension.Single(res.Text)

		case model.VarForm:
			// Top-level Form short-circuits the whole render (spec.md
			// §4.8 step 3) — the form UI itself is a frontend concern.
			return Result{Outcome: OutcomeAborted}

		default:
			toEvaluate := v
			if v.InjectVars {
				toEvaluate.Params = injectScope(v.Params, scope)
			}
			evalResult := registry.Evaluate(ctx, toEvaluate, scope)
			switch evalResult.Status {
			case extension.StatusAborted:
				return Result{Outcome: OutcomeAborted}
			case extension.StatusError:
				return Result{Outcome: OutcomeError, Err: evalResult.Err}
			}
			scope[v.Name] = evalResult.Output
		}
	}

	substituted, err := substitute(effect.Body, scope)
	if err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}
	return Result{Outcome: OutcomeSuccess, Text: finish(substituted, opts)}
}

func evaluateMatch(ctx context.Context, v model.Variable, rc Context, opts Options, registry *extension.Registry) Result {
	trigger, _ := v.Params.GetString("trigger")
	tm, ok := rc.MatchesMap[trigger]
	if !ok {
		return Result{Outcome: OutcomeError, Err: fmt.Errorf("match variable %q: trigger %q has no match", v.Name, trigger)}
	}
	if tm.Base.Effect.Kind != model.EffectText || tm.Base.Effect.Text == nil {
		return Result{Outcome: OutcomeError, Err: fmt.Errorf("match variable %q: trigger %q has no text effect to nest", v.Name, trigger)}
	}
	return Render(ctx, *tm.Base.Effect.Text, rc, opts, registry)
}

// injectScope re-renders any `{{…}}` reference inside each string-typed
// param using the already-evaluated scope, before the variable itself is
// dispatched (spec.md §4.8 step 3).
func injectScope(params model.Params, scope extension.Scope) model.Params {
	out := make(model.Params, len(params))
	for k, v := range params {
		if v.Kind() != model.KindString {
			out[k] = v
			continue
		}
		rendered, err := substitute(v.AsString(), scope)
		if err != nil {
			out[k] = v
			continue
		}
		out[k] = model.String(rendered)
	}
	return out
}

// substitute replaces every `{{name}}` / `{{name.sub}}` occurrence in body
// with its resolved scope value. A reference to a name or sub-key absent
// from scope is an error (spec.md §4.8 step 4).
func substitute(body string, scope extension.Scope) (string, error) {
	var firstErr error
	result := substitutionPattern.ReplaceAllStringFunc(body, func(match string) string {
		if firstErr != nil {
			return match
		}
		groups := substitutionPattern.FindStringSubmatch(match)
		name, sub := groups[1], groups[2]
		out, ok := scope[name]
		if !ok {
			firstErr = fmt.Errorf("no scope entry for %q", name)
			return match
		}
		s, ok := out.AsString(sub)
		if !ok {
			firstErr = fmt.Errorf("no entry %q on variable %q", sub, name)
			return match
		}
		return s
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// finish applies the unescape step and then the casing transform, in that
// order (spec.md §4.8 steps 5-6).
func finish(body string, opts Options) string {
	unescaped := unescape(body)
	return ApplyCasing(unescaped, opts.CasingStyle)
}

func unescape(body string) string {
	r := strings.NewReplacer(`\{`, "{", `\}`, "}")
	return r.Replace(body)
}
