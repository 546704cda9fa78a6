package model

// VarType is the closed set of variable kinds. Only Match and Form carry
// core-level semantics (§4.8); Date/Echo/Shell/Script/Random are dispatched
// to the pkg/extension registry. Apart from Echo (and Mock)
// in pkg/extension, their concrete implementations are an external
// collaborator — the core only needs the tagged variant and the interface
// in pkg/extension.
type VarType int

const (
	VarUnresolved VarType = iota
	VarDate
	VarEcho
	VarShell
	VarScript
	VarRandom
	VarForm
	VarMock
	VarMatch
)

func (t VarType) String() string {
	switch t {
	case VarDate:
		return "date"
	case VarEcho:
		return "echo"
	case VarShell:
		return "shell"
	case VarScript:
		return "script"
	case VarRandom:
		return "random"
	case VarForm:
		return "form"
	case VarMock:
		return "mock"
	case VarMatch:
		return "match"
	default:
		return "unresolved"
	}
}

// Variable is one node of the dependency graph a template body is rendered
// against (spec.md §3, §4.7).
type Variable struct {
	Name       string
	Type       VarType
	Params     Params
	InjectVars bool
	DependsOn  []string
}

// NewVariable returns a Variable with InjectVars defaulting to true, per the
// invariant in spec.md §3.
func NewVariable(name string, t VarType, params Params) Variable {
	return Variable{Name: name, Type: t, Params: params, InjectVars: true}
}
