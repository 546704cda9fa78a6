package extension

import (
	"context"
	"testing"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DispatchesByType(t *testing.T) {
	r := NewRegistry(Mock{}, Echo{})
	v := model.Variable{Name: "greeting", Type: model.VarMock, Params: model.Params{"value": model.String("hi")}}

	result := r.Evaluate(context.Background(), v, Scope{})
	require.Equal(t, StatusSuccess, result.Status)
	s, ok := result.Output.AsString("")
	require.True(t, ok)
	assert.Equal(t, "hi", s)
}

func TestRegistry_UnregisteredTypeErrors(t *testing.T) {
	r := NewRegistry(Mock{})
	v := model.Variable{Name: "now", Type: model.VarDate}

	result := r.Evaluate(context.Background(), v, Scope{})
	assert.Equal(t, StatusError, result.Status)
	assert.ErrorContains(t, result.Err, "not available in core")
}

func TestOutput_MultipleSubAccess(t *testing.T) {
	out := Multiple(map[string]string{"first": "Ada", "last": "Lovelace"})
	v, ok := out.AsString("first")
	require.True(t, ok)
	assert.Equal(t, "Ada", v)

	_, ok = out.AsString("missing")
	assert.False(t, ok)
}
