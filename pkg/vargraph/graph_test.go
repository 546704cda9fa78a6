package vargraph

import (
	"testing"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencedNames_DedupesAndKeepsOrder(t *testing.T) {
	names := ReferencedNames("Hi {{name}}, {{name.first}} and {{other}}")
	assert.Equal(t, []string{"name", "other"}, names)
}

func TestResolve_TopologicalOrder(t *testing.T) {
	locals := map[string]model.Variable{
		"greeting": {Name: "greeting", Type: model.VarMock, DependsOn: []string{"name"}},
		"name":     {Name: "name", Type: model.VarMock},
	}
	order, err := Resolve("{{greeting}}", locals, nil)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "name", order[0].Name)
	assert.Equal(t, "greeting", order[1].Name)
}

func TestResolve_MissingVariable(t *testing.T) {
	_, err := Resolve("{{ghost}}", nil, nil)
	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost", missing.Name)
}

func TestResolve_CircularDependency(t *testing.T) {
	locals := map[string]model.Variable{
		"a": {Name: "a", Type: model.VarMock, DependsOn: []string{"b"}},
		"b": {Name: "b", Type: model.VarMock, DependsOn: []string{"a"}},
	}
	_, err := Resolve("{{a}}", locals, nil)
	var cycle *CircularDependencyError
	require.ErrorAs(t, err, &cycle)
}

func TestResolve_UnresolvedRebindsToGlobal(t *testing.T) {
	locals := map[string]model.Variable{
		"shared": {Name: "shared", Type: model.VarUnresolved},
	}
	globals := map[string]model.Variable{
		"shared": {Name: "shared", Type: model.VarMatch, Params: model.Params{
			"trigger": model.String(":x"),
		}},
	}
	order, err := Resolve("{{shared}}", locals, globals)
	require.NoError(t, err)
	require.Len(t, order, 1)
	assert.Equal(t, model.VarMatch, order[0].Type)
}

func TestResolve_InjectedParamReferenceBecomesEdge(t *testing.T) {
	locals := map[string]model.Variable{
		"greeting": {
			Name:       "greeting",
			Type:       model.VarMock,
			InjectVars: true,
			Params:     model.Params{"value": model.String("Hi {{name}}")},
		},
		"name": {Name: "name", Type: model.VarMock},
	}
	order, err := Resolve("{{greeting}}", locals, nil)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "name", order[0].Name)
}
