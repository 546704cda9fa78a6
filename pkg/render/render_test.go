package render

import (
	"context"
	"testing"

	"github.com/expando-dev/expando/pkg/extension"
	"github.com/expando-dev/expando/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_VerbatimWhenNoPlaceholders(t *testing.T) {
	effect := model.TextEffect{Body: `literal \{ text \}`}
	res := Render(context.Background(), effect, Context{}, Options{}, extension.NewRegistry())
	require.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "literal { text }", res.Text)
}

func TestRender_SubstitutesMockVariable(t *testing.T) {
	effect := model.TextEffect{
		Body: "Hello {{name}}!",
		Vars: []model.Variable{
			{Name: "name", Type: model.VarMock, Params: model.Params{"value": model.String("Ada")}},
		},
	}
	registry := extension.NewRegistry(extension.Mock{})
	res := Render(context.Background(), effect, Context{}, Options{}, registry)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Hello Ada!", res.Text)
}

func TestRender_InjectVarsReRendersParam(t *testing.T) {
	effect := model.TextEffect{
		Body: "{{greeting}}",
		Vars: []model.Variable{
			{Name: "name", Type: model.VarMock, Params: model.Params{"value": model.String("Ada")}},
			{
				Name: "greeting", Type: model.VarMock, InjectVars: true,
				Params: model.Params{"value": model.String("Hi {{name}}")},
			},
		},
	}
	registry := extension.NewRegistry(extension.Mock{})
	res := Render(context.Background(), effect, Context{}, Options{}, registry)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Hi Ada", res.Text)
}

func TestRender_TopLevelFormAborts(t *testing.T) {
	effect := model.TextEffect{
		Body: "{{f}}",
		Vars: []model.Variable{{Name: "f", Type: model.VarForm}},
	}
	res := Render(context.Background(), effect, Context{}, Options{}, extension.NewRegistry())
	assert.Equal(t, OutcomeAborted, res.Outcome)
}

func TestRender_MatchVariableRecursesIntoMatchesMap(t *testing.T) {
	nested := &model.TriggerMatch{
		Base: model.BaseMatch{
			Effect: model.Effect{
				Kind: model.EffectText,
				Text: &model.TextEffect{Body: "World"},
			},
		},
	}
	effect := model.TextEffect{
		Body: "Hello {{other}}",
		Vars: []model.Variable{
			{Name: "other", Type: model.VarMatch, Params: model.Params{"trigger": model.String(":world")}},
		},
	}
	rc := Context{MatchesMap: map[string]*model.TriggerMatch{":world": nested}}
	res := Render(context.Background(), effect, rc, Options{}, extension.NewRegistry())
	require.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Hello World", res.Text)
}

func TestRender_MissingScopeEntryIsError(t *testing.T) {
	effect := model.TextEffect{Body: "{{ghost}}"}
	res := Render(context.Background(), effect, Context{}, Options{}, extension.NewRegistry())
	assert.Equal(t, OutcomeError, res.Outcome)
}

func TestApplyCasing(t *testing.T) {
	assert.Equal(t, "hello world", ApplyCasing("hello world", StyleNone))
	assert.Equal(t, "Hello world", ApplyCasing("hello world", StyleCapitalize))
	assert.Equal(t, "HELLO WORLD", ApplyCasing("hello world", StyleUppercase))
	assert.Equal(t, "Hello World", ApplyCasing("hello world", StyleCapitalizeWords))
}

func TestSelectStyle(t *testing.T) {
	assert.Equal(t, StyleNone, SelectStyle("hello", model.StyleUppercase, true))
	assert.Equal(t, StyleNone, SelectStyle("Hello", model.StyleUppercase, false))
	assert.Equal(t, StyleUppercase, SelectStyle("HELLO", model.StyleCapitalize, true))
	assert.Equal(t, StyleCapitalize, SelectStyle("Hello", model.StyleUppercase, true))
	assert.Equal(t, StyleUppercase, SelectStyle("H", model.StyleUppercase, true))
}
