package matchfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expando-dev/expando/pkg/model"
)

// formControlRegex recognizes [[field]] or [[field.sub]] placeholders in a
// form layout. Only the field name is kept — the optional ".sub" is dropped,
// matching the original implementation's FORM_CONTROL_REGEX bit-for-bit
// (spec.md §9 "Open question: form-variable rewriting").
var formControlRegex = regexp.MustCompile(`\[\[(\w+)(?:\.\w+)?\]\]`)

func convertVarType(t string) (model.VarType, error) {
	switch t {
	case "date":
		return model.VarDate, nil
	case "echo", "dummy":
		return model.VarEcho, nil
	case "form":
		return model.VarForm, nil
	case "match":
		return model.VarMatch, nil
	case "random":
		return model.VarRandom, nil
	case "script":
		return model.VarScript, nil
	case "shell":
		return model.VarShell, nil
	case "mock", "test":
		return model.VarMock, nil
	default:
		return model.VarUnresolved, fmt.Errorf("unknown variable type %q", t)
	}
}

func convertParams(in map[string]any) model.Params {
	if in == nil {
		return nil
	}
	out := make(model.Params, len(in))
	for k, v := range in {
		out[k] = convertAnyValue(v)
	}
	return out
}

func convertAnyValue(v any) model.Value {
	switch x := v.(type) {
	case nil:
		return model.Null()
	case bool:
		return model.Bool(x)
	case int:
		return model.Integer(int64(x))
	case int64:
		return model.Integer(x)
	case float64:
		return model.Float(x)
	case string:
		return model.String(x)
	case []any:
		items := make([]model.Value, len(x))
		for i, e := range x {
			items[i] = convertAnyValue(e)
		}
		return model.Array(items)
	case map[string]any:
		return model.Object(convertParams(x))
	default:
		return model.String(fmt.Sprintf("%v", x))
	}
}

// convertVariable converts one yamlVariable. errs collects non-fatal
// problems (spec.md §7's "unknown variable type" -> skip, record).
func convertVariable(y yamlVariable, errs *model.NonFatalErrorSet) (model.Variable, bool) {
	vt, err := convertVarType(y.Type)
	if err != nil {
		errs.Errorf("variable %q: %w", y.Name, err)
		return model.Variable{}, false
	}
	v := model.Variable{
		Name:       y.Name,
		Type:       vt,
		Params:     convertParams(y.Params),
		InjectVars: true,
		DependsOn:  y.DependsOn,
	}
	if y.InjectVars != nil {
		v.InjectVars = *y.InjectVars
	}
	return v, true
}

func convertUppercaseStyle(s string, errs *model.NonFatalErrorSet) model.UppercaseStyle {
	switch strings.ToLower(s) {
	case "uppercase":
		return model.StyleUppercase
	case "capitalize":
		return model.StyleCapitalize
	case "capitalize_words":
		return model.StyleCapitalizeWords
	default:
		errs.Warnf("unknown uppercase_style %q, falling back to uppercase", s)
		return model.StyleUppercase
	}
}

func convertWordBoundary(y yamlMatch) model.WordBoundary {
	if y.LeftWord != nil || y.RightWord != nil {
		left := y.LeftWord != nil && *y.LeftWord
		right := y.RightWord != nil && *y.RightWord
		switch {
		case left && right:
			return model.WordBoundaryBoth
		case left:
			return model.WordBoundaryLeft
		case right:
			return model.WordBoundaryRight
		default:
			return model.WordBoundaryNone
		}
	}
	if y.Word {
		return model.WordBoundaryBoth
	}
	return model.WordBoundaryNone
}

// rewriteForm applies the [[field]] -> {{form1.field}} substitution and the
// backslash-brace unescape, returning the rewritten body and a synthetic
// "form1" variable prepended ahead of any vars declared on the match
// (spec.md §4.1, the only place the parser injects a variable).
func rewriteForm(layout string, fields map[string]any) (string, model.Variable) {
	rewritten := formControlRegex.ReplaceAllStringFunc(layout, func(m string) string {
		sub := formControlRegex.FindStringSubmatch(m)
		return "{{form1." + sub[1] + "}}"
	})
	rewritten = strings.ReplaceAll(rewritten, `\{`, "{ ")
	rewritten = strings.ReplaceAll(rewritten, `\}`, " }")

	params := model.Params{"layout": model.String(layout)}
	if fields != nil {
		params["fields"] = model.Object(convertParams(fields))
	}
	formVar := model.Variable{Name: "form1", Type: model.VarForm, Params: params, InjectVars: true}
	return rewritten, formVar
}

// convertMatch converts one yamlMatch into a TriggerMatch or RegexMatch.
// Returns (nil, nil, false) when the match must be dropped (spec.md §4.1,
// §7: no trigger/triggers/regex, or no effect).
func convertMatch(y yamlMatch, errs *model.NonFatalErrorSet) (*model.TriggerMatch, *model.RegexMatch, bool) {
	triggers, isRegex, ok := unifyTriggers(y, errs)
	if !ok {
		return nil, nil, false
	}

	base, ok := convertBase(y, errs)
	if !ok {
		return nil, nil, false
	}

	if isRegex {
		return nil, &model.RegexMatch{Regex: y.Regex, Base: base}, true
	}

	tm := &model.TriggerMatch{
		Triggers:     triggers,
		Base:         base,
		WordBoundary: convertWordBoundary(y),
	}
	tm.PropagateCase = y.PropagateCase
	if y.UppercaseStyle != "" {
		tm.UppercaseStyle = convertUppercaseStyle(y.UppercaseStyle, errs)
		if !y.PropagateCase {
			errs.Warnf("uppercase_style set without propagate_case; style is ignored until case propagation is enabled")
		}
	} else if y.PropagateCase {
		tm.UppercaseStyle = model.StyleUppercase
	}
	return tm, nil, true
}

func unifyTriggers(y yamlMatch, errs *model.NonFatalErrorSet) ([]string, bool, bool) {
	hasTrigger := y.Trigger != ""
	hasTriggers := len(y.Triggers) > 0
	hasRegex := y.Regex != ""

	switch {
	case hasTrigger && hasTriggers:
		errs.Errorf("match declares both trigger and triggers")
		return nil, false, false
	case hasRegex && (hasTrigger || hasTriggers):
		errs.Errorf("match declares both a regex and a trigger")
		return nil, false, false
	case hasTrigger:
		return []string{y.Trigger}, false, true
	case hasTriggers:
		return y.Triggers, false, true
	case hasRegex:
		return nil, true, true
	default:
		errs.Errorf("match has none of trigger, triggers, regex")
		return nil, false, false
	}
}

func convertBase(y yamlMatch, errs *model.NonFatalErrorSet) (model.BaseMatch, bool) {
	base := model.BaseMatch{SearchTerms: y.SearchTerms}
	if y.Label != nil {
		base.Label = *y.Label
		base.HasLabel = true
	}

	forceMode := model.ForceModeNone
	if y.ForceClipboard {
		forceMode = model.ForceModeClipboard
	} else {
		switch y.ForceMode {
		case "clipboard":
			forceMode = model.ForceModeClipboard
		case "keys":
			forceMode = model.ForceModeKeys
		}
	}

	vars, ok := convertVars(y.Vars, errs)
	if !ok {
		return base, false
	}

	switch {
	case y.Replace != nil:
		base.Effect = model.Effect{Kind: model.EffectText, Text: &model.TextEffect{
			Body: *y.Replace, Vars: vars, Format: model.FormatPlain, ForceMode: forceMode,
		}}
	case y.Markdown != nil:
		base.Effect = model.Effect{Kind: model.EffectText, Text: &model.TextEffect{
			Body: *y.Markdown, Vars: vars, Format: model.FormatMarkdown, ForceMode: forceMode,
		}}
	case y.Html != nil:
		base.Effect = model.Effect{Kind: model.EffectText, Text: &model.TextEffect{
			Body: *y.Html, Vars: vars, Format: model.FormatHtml, ForceMode: forceMode,
		}}
	case y.Form != nil:
		rewritten, formVar := rewriteForm(*y.Form, y.FormFields)
		base.Effect = model.Effect{Kind: model.EffectText, Text: &model.TextEffect{
			Body:      rewritten,
			Vars:      append([]model.Variable{formVar}, vars...),
			Format:    model.FormatPlain,
			ForceMode: forceMode,
		}}
	case y.ImagePath != nil:
		base.Effect = model.Effect{Kind: model.EffectImage, Image: &model.ImageEffect{Path: *y.ImagePath}}
	default:
		errs.Errorf("match has no effect (replace/markdown/html/form/image_path)")
		return base, false
	}
	return base, true
}

func convertVars(in []yamlVariable, errs *model.NonFatalErrorSet) ([]model.Variable, bool) {
	out := make([]model.Variable, 0, len(in))
	for _, y := range in {
		v, ok := convertVariable(y, errs)
		if ok {
			out = append(out, v)
		}
	}
	return out, true
}
