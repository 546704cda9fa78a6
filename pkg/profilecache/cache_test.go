package profilecache

import (
	"testing"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LaterTriggerWins(t *testing.T) {
	first := &model.TriggerMatch{Triggers: []string{":hi"}, Base: model.BaseMatch{Label: "first"}}
	second := &model.TriggerMatch{Triggers: []string{":hi"}, Base: model.BaseMatch{Label: "second"}}

	cache := Build(model.Collected{TriggerMatches: []*model.TriggerMatch{first, second}})
	tm, ok := cache.Dispatch(":hi")
	require.True(t, ok)
	assert.Equal(t, "second", tm.Base.Label)
}

func TestDispatch_LowercaseOnlyWhenPropagateCase(t *testing.T) {
	propagates := &model.TriggerMatch{Triggers: []string{":hey"}, PropagateCase: true}
	cache := Build(model.Collected{TriggerMatches: []*model.TriggerMatch{propagates}})

	tm, ok := cache.Dispatch(":HEY")
	require.True(t, ok)
	assert.Same(t, propagates, tm)

	noPropagate := &model.TriggerMatch{Triggers: []string{":bye"}}
	cache2 := Build(model.Collected{TriggerMatches: []*model.TriggerMatch{noPropagate}})
	_, ok = cache2.Dispatch(":BYE")
	assert.False(t, ok)
}

func TestContainsAnyTrigger(t *testing.T) {
	tm := &model.TriggerMatch{Triggers: []string{":eta"}}
	cache := Build(model.Collected{TriggerMatches: []*model.TriggerMatch{tm}})

	assert.True(t, cache.ContainsAnyTrigger("my :eta is near"))
	assert.False(t, cache.ContainsAnyTrigger("nothing here"))
}

func TestGlobalVarMap_LaterWins(t *testing.T) {
	first := &model.Variable{Name: "date", Type: model.VarUnresolved}
	second := &model.Variable{Name: "date", Type: model.VarMatch}

	cache := Build(model.Collected{GlobalVars: []*model.Variable{first, second}})
	assert.Same(t, second, cache.GlobalVarMap["date"])
}
