package extension

import (
	"context"

	"github.com/expando-dev/expando/pkg/model"
)

// Mock returns its "value" param verbatim, unconditionally successful. It
// exists to exercise the render pipeline's dispatch and scope-injection
// logic in tests without any real side effect.
type Mock struct{}

func (Mock) Type() model.VarType { return model.VarMock }

func (Mock) Evaluate(_ context.Context, v model.Variable, _ Scope) Result {
	s, _ := v.Params.GetString("value")
	return Success(Single(s))
}

// Echo returns its "echo" param verbatim. Distinct from Mock only in name,
// matching espanso's own "echo" variable type used for simple static text.
type Echo struct{}

func (Echo) Type() model.VarType { return model.VarEcho }

func (Echo) Evaluate(_ context.Context, v model.Variable, _ Scope) Result {
	s, _ := v.Params.GetString("echo")
	return Success(Single(s))
}
