// Package vargraph implements C9: scanning a template body for `{{name}}` /
// `{{name.sub}}` references, assembling the variable dependency graph those
// references plus `depends_on` and injected-param references induce, and
// topologically ordering it for the renderer (spec.md §4.7).
package vargraph

import (
	"fmt"
	"regexp"

	"github.com/expando-dev/expando/pkg/model"
)

// referencePattern matches `{{ name }}` and `{{ name.sub }}` (spec.md
// §4.7 step 1's exact grammar).
var referencePattern = regexp.MustCompile(`\{\{\s*(\w+)(?:\.\w+)?\s*\}\}`)

// ReferencedNames returns the deduplicated set of top-level variable names
// a body references, in first-occurrence order.
func ReferencedNames(body string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range referencePattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// CircularDependencyError reports a cycle found during topological sort.
type CircularDependencyError struct{ A, B string }

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular variable dependency between %q and %q", e.A, e.B)
}

// MissingVariableError reports a reference with no matching binding.
type MissingVariableError struct{ Name string }

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable %q", e.Name)
}

// Resolve builds the dependency graph reachable from body's root references
// and returns it topologically ordered, ready for sequential evaluation by
// the renderer. locals and globals are keyed by Variable.Name; locals win
// when both define the same name.
func Resolve(body string, locals, globals map[string]model.Variable) ([]model.Variable, error) {
	bindings := map[string]model.Variable{}
	var order []string
	visiting := map[string]bool{}
	visited := map[string]bool{}
	var topo []model.Variable

	bind := func(name string) (model.Variable, bool) {
		if v, ok := bindings[name]; ok {
			return v, true
		}
		v, ok := locals[name]
		if !ok {
			v, ok = globals[name]
		}
		if !ok {
			return model.Variable{}, false
		}
		if v.Type == model.VarUnresolved {
			if g, ok := globals[name]; ok {
				v = g
			}
		}
		bindings[name] = v
		return v, true
	}

	edgesOf := func(v model.Variable) []string {
		edges := append([]string{}, v.DependsOn...)
		if v.InjectVars {
			for _, val := range v.Params {
				if val.Kind() != model.KindString {
					continue
				}
				edges = append(edges, ReferencedNames(val.AsString())...)
			}
		}
		return edges
	}

	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if visiting[name] {
			return &CircularDependencyError{A: order[len(order)-1], B: name}
		}
		v, ok := bind(name)
		if !ok {
			return &MissingVariableError{Name: name}
		}
		visiting[name] = true
		order = append(order, name)
		for _, dep := range edgesOf(v) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		order = order[:len(order)-1]
		visiting[name] = false
		visited[name] = true
		topo = append(topo, v)
		return nil
	}

	for _, root := range ReferencedNames(body) {
		if err := visit(root); err != nil {
			return nil, err
		}
	}

	return topo, nil
}
